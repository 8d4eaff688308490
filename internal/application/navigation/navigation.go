package navigation

import "strings"

// prefixRoute marca um link como ativo para qualquer caminho que comece com o prefixo.
type prefixRoute struct {
	prefix string
	link   string
}

var prefixRoutes = []prefixRoute{
	{prefix: "/relatorios", link: "/relatorios"},
	{prefix: "/arquivos", link: "/arquivos_cadastros"},
	{prefix: "/usuarios", link: "/usuarios"},
	{prefix: "/auditoria", link: "/auditoria"},
	{prefix: "/caixa", link: "/caixa"},
	{prefix: "/charts", link: "/charts"},
}

// Link is one entry of the navigation bar.
type Link struct {
	Href   string
	Label  string
	Active bool
}

// DefaultLinks é a barra de navegação do sistema AMEG.
func DefaultLinks() []Link {
	return []Link{
		{Href: "/", Label: "Início"},
		{Href: "/relatorios", Label: "Relatórios"},
		{Href: "/arquivos_cadastros", Label: "Arquivos"},
		{Href: "/usuarios", Label: "Usuários"},
		{Href: "/auditoria", Label: "Auditoria"},
		{Href: "/caixa", Label: "Caixa"},
		{Href: "/charts", Label: "Gráficos"},
	}
}

// IsActive reports whether a link with linkPath should be highlighted on currentPath.
func IsActive(linkPath, currentPath string) bool {
	if linkPath == currentPath {
		return true
	}
	for _, r := range prefixRoutes {
		if linkPath == r.link && strings.HasPrefix(currentPath, r.prefix) {
			return true
		}
	}
	return false
}

// Highlight returns a copy of links with Active recomputed for currentPath.
func Highlight(links []Link, currentPath string) []Link {
	out := make([]Link, len(links))
	for i, l := range links {
		l.Active = IsActive(l.Href, currentPath)
		out[i] = l
	}
	return out
}
