package config

// DefaultChecks returns the built-in check battery. Order is display order.
func DefaultChecks() []CheckSpec {
	return []CheckSpec{
		// Basic connectivity
		{Name: "ping_google", Type: TypeCommand, Description: "Ping Google DNS",
			Command: "ping -c 4 8.8.8.8", Timeout: DefaultCheckTimeout},
		{Name: "ping_cloudflare", Type: TypeCommand, Description: "Ping Cloudflare DNS",
			Command: "ping -c 4 1.1.1.1", Timeout: DefaultCheckTimeout},

		// DNS resolution
		{Name: "dns_google", Type: TypeCommand, Description: "DNS lookup for google.com",
			Command: "nslookup google.com", Timeout: DefaultCheckTimeout},
		{Name: "dns_secret_lcd", Type: TypeCommand, Description: "DNS lookup for Secret LCD",
			Command: "nslookup lcd.mainnet.secretsaturn.net", Timeout: DefaultCheckTimeout},
		{Name: "dns_secret_rpc", Type: TypeCommand, Description: "DNS lookup for Secret RPC",
			Command: "nslookup rpc.mainnet.secretsaturn.net", Timeout: DefaultCheckTimeout},

		// Interface and route introspection
		{Name: "interfaces", Type: TypeCommand, Description: "Network interfaces",
			Command: "ip addr show", Timeout: DefaultCheckTimeout},
		{Name: "routes", Type: TypeCommand, Description: "Routing table",
			Command: "ip route show", Timeout: DefaultCheckTimeout},

		// HTTP/HTTPS connectivity
		{Name: "http_google", Type: TypeRequest, Description: "HTTP request to Google",
			URL: "http://google.com", Timeout: DefaultCheckTimeout},
		{Name: "https_google", Type: TypeRequest, Description: "HTTPS request to Google",
			URL: "https://google.com", Timeout: DefaultCheckTimeout},

		// Secret Network endpoints
		{Name: "secret_lcd_node_info", Type: TypeRequest, Description: "Secret Network LCD node info",
			URL: "https://lcd.mainnet.secretsaturn.net/cosmos/base/tendermint/v1beta1/node_info", Timeout: DefaultCheckTimeout},
		{Name: "secret_rpc_status", Type: TypeRequest, Description: "Secret Network RPC status",
			URL: "https://rpc.mainnet.secretsaturn.net/status", Timeout: DefaultCheckTimeout},
		{Name: "secret_lcd_scrt", Type: TypeRequest, Description: "Secret Network LCD (secret.express)",
			URL: "https://lcd.secret.express/cosmos/base/tendermint/v1beta1/node_info", Timeout: DefaultCheckTimeout},
		{Name: "secret_contract_query", Type: TypeRequest, Description: "Secret Network contract query",
			URL: "https://lcd.mainnet.secretsaturn.net/compute/v1beta1/contract/secret1rh8qc6hx6lqhqfglhzqzcklazrm8xmgdqqxrfp", Timeout: DefaultCheckTimeout},

		// TLS certificate inspection
		{Name: "openssl_google", Type: TypeCommand, Description: "TLS certificate check for Google",
			Command: "echo | openssl s_client -connect google.com:443 -servername google.com 2>/dev/null | openssl x509 -noout -dates", Timeout: DefaultCheckTimeout},
		{Name: "openssl_secret", Type: TypeCommand, Description: "TLS certificate check for Secret LCD",
			Command: "echo | openssl s_client -connect lcd.mainnet.secretsaturn.net:443 -servername lcd.mainnet.secretsaturn.net 2>/dev/null | openssl x509 -noout -dates", Timeout: DefaultCheckTimeout},

		// Environment
		{Name: "env_vars", Type: TypeCommand, Description: "HTTP/Proxy environment variables",
			Command: "env | grep -E '(HTTP|PROXY|DNS)'", Timeout: DefaultCheckTimeout},
		{Name: "resolv_conf", Type: TypeCommand, Description: "DNS resolver configuration",
			Command: "cat /etc/resolv.conf", Timeout: DefaultCheckTimeout},
	}
}
