// Package nav declares the sidebar.
package nav

// Kind says how a sidebar entry behaves when clicked.
type Kind string

const (
	KindLink   Kind = "link"
	KindUpload Kind = "upload"
	KindDialog Kind = "dialog"
)

// Item is one sidebar entry.
type Item struct {
	Label       string
	Href        string
	Icon        string
	Kind        Kind
	Implemented bool
	Active      bool
}

// IsButton reports whether the entry opens an overlay instead of navigating.
func (i Item) IsButton() bool {
	return i.Kind != KindLink
}

var items = []Item{
	{Label: "Dashboard", Href: "/", Icon: "home", Kind: KindLink, Implemented: true},
	{Label: "Analytics", Href: "/analytics", Icon: "chart", Kind: KindLink, Implemented: true},
	{Label: "User Data", Href: "/userdata", Icon: "shield", Kind: KindLink},
	{Label: "User Lists", Href: "/userlist", Icon: "file", Kind: KindLink},
	{Label: "Upload File", Href: "/upload-file", Icon: "upload", Kind: KindUpload, Implemented: true},
	{Label: "Create User", Href: "/?dialog=create-user", Icon: "user", Kind: KindDialog, Implemented: true},
	{Label: "Account", Href: "/account", Icon: "user", Kind: KindLink, Implemented: true},
	{Label: "Dataset Access", Href: "/dataset-access", Icon: "database", Kind: KindLink},
	{Label: "Report Generation", Href: "/report-generation", Icon: "search", Kind: KindLink},
	{Label: "View Data", Href: "/view-data", Icon: "chart", Kind: KindLink},
	{Label: "Notifications", Href: "/notifications", Icon: "bell", Kind: KindLink},
	{Label: "Help", Href: "/help", Icon: "help", Kind: KindLink},
	{Label: "Contacts", Href: "/contacts", Icon: "contacts", Kind: KindLink},
	{Label: "Privacy Policy", Href: "/privacy-policy", Icon: "privacy", Kind: KindLink},
	{Label: "Terms and Conditions", Href: "/terms-and-conditions", Icon: "gavel", Kind: KindLink},
	{Label: "Logout", Href: "/logout", Icon: "user", Kind: KindLink, Implemented: true},
}

// Items returns the sidebar in display order with the entry matching
// current marked active.
func Items(current string) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].Active = out[i].Kind == KindLink && out[i].Href == current
	}
	return out
}

// Placeholders returns the link paths that render the "not available" page.
func Placeholders() []Item {
	var out []Item
	for _, it := range items {
		if !it.Implemented && it.Kind == KindLink {
			out = append(out, it)
		}
	}
	return out
}
