// Package resolver inspects the host's DNS resolver configuration and can
// probe the configured nameservers directly, bypassing the system stub.
// The dashboard exposes the parsed configuration; the daemon probes each
// nameserver once at startup to log which resolvers actually answer.
package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// DefaultConfigPath is where the resolver configuration is read from.
const DefaultConfigPath = "/etc/resolv.conf"

// DefaultProbeName is the name queried when probing a nameserver.
const DefaultProbeName = "google.com."

// DefaultProbeTimeout bounds a single nameserver probe.
const DefaultProbeTimeout = 3 * time.Second

// Info is the parsed resolver configuration.
type Info struct {
	Nameservers []string `json:"nameservers"`
	Search      []string `json:"search"`
	Ndots       int      `json:"ndots"`
	TimeoutSec  int      `json:"timeout_sec"`
	Attempts    int      `json:"attempts"`
}

// ReadConfig parses the resolver configuration file at path. An empty path
// reads DefaultConfigPath.
func ReadConfig(path string) (Info, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cc, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return Info{
		Nameservers: cc.Servers,
		Search:      cc.Search,
		Ndots:       cc.Ndots,
		TimeoutSec:  cc.Timeout,
		Attempts:    cc.Attempts,
	}, nil
}

// Probe sends a single A query for DefaultProbeName to the given
// nameserver and returns the round-trip time. The server may be a bare
// address; port 53 is assumed when none is given.
func Probe(ctx context.Context, server string) (time.Duration, error) {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	msg := new(dns.Msg)
	msg.SetQuestion(DefaultProbeName, dns.TypeA)
	msg.RecursionDesired = true

	client := &dns.Client{Timeout: DefaultProbeTimeout}
	resp, rtt, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return 0, fmt.Errorf("query to %s failed: %w", server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return 0, fmt.Errorf("query to %s returned rcode %s", server, dns.RcodeToString[resp.Rcode])
	}
	return rtt, nil
}
