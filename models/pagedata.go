package models

import "html/template"

// LoginPageData feeds the login template.
type LoginPageData struct {
	Error    string
	Remember bool
}

// UnauthorizedPageData feeds the unauthorized template.
type UnauthorizedPageData struct {
	Role string
	Home string
	From string
}

// NewsPageData feeds the news admin template.
type NewsPageData struct {
	News  []NewsItem
	Error string
	User  *User
}

// MapPageData feeds the map template. MarkersJSON is the clustered marker
// set serialized for the Leaflet script; it is template.JS because it is
// embedded verbatim inside a script tag.
type MapPageData struct {
	MarkersJSON template.JS
	Error       string
	User        *User
}
