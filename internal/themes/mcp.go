// SPDX-License-Identifier: MIT
package themes

import "strings"

// MCPClient describes where an MCP-aware editor reads its server config
type MCPClient struct {
	Format     Format
	Name       string
	ConfigPath string
}

// MCPClients are the editors offered on the export panel. Both take the same
// payload today.
var MCPClients = []MCPClient{
	{Format: FormatCursor, Name: "Cursor", ConfigPath: ".cursor/mcp.json"},
	{Format: FormatWindsurf, Name: "Windsurf", ConfigPath: ".codeium/windsurf/mcp_config.json"},
}

// MCPClientFor returns the client descriptor for an MCP format
func MCPClientFor(f Format) (MCPClient, bool) {
	for _, c := range MCPClients {
		if c.Format == f {
			return c, true
		}
	}
	return MCPClient{}, false
}

type mcpServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

type mcpConfig struct {
	MCPServers map[string]mcpServer `json:"mcpServers"`
}

// RegistryURL is the registry.json location for a theme and radius
func RegistryURL(baseURL, theme string, radius float64) string {
	return strings.TrimRight(baseURL, "/") + "/themes/" + theme + "/" + FormatRadius(radius) + "/r/registry.json"
}

// V0URL opens the theme.json starter in v0
func V0URL(baseURL, theme string) string {
	target := strings.TrimRight(baseURL, "/") + "/themes/" + theme + "/r/theme.json"
	return "https://v0.dev/chat/api/open?url=" + target
}

// MCPConfig renders the MCP client configuration pointing at a theme's
// registry endpoint
func MCPConfig(baseURL, theme string, radius float64) string {
	cfg := mcpConfig{
		MCPServers: map[string]mcpServer{
			"shadcn": {
				Command: "npx",
				Args:    []string{"-y", "shadcn@canary", "registry:mcp"},
				Env: map[string]string{
					"REGISTRY_URL": RegistryURL(baseURL, theme, radius),
				},
			},
		},
	}

	out, err := marshalIndent(cfg)
	if err != nil {
		return ""
	}
	return out
}
