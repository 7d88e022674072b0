package models

// Barrio is a neighborhood a geocoded address belongs to.
type Barrio struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Source identifies where a person record was imported from.
type Source struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RecordItem is one geocoded record belonging to a person.
type RecordItem struct {
	ID          int      `json:"id"`
	PersonID    int      `json:"person_id"`
	SourceID    int      `json:"source_id"`
	AddressID   int      `json:"address_id"`
	Description *string  `json:"description"`
	Source      *Source  `json:"source,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// Person is a geocoded person as served by the /persons endpoint.
type Person struct {
	ID       int          `json:"id"`
	DNI      int          `json:"dni"`
	FullName string       `json:"full_name"`
	Phone    *string      `json:"phone"`
	Phones   []string     `json:"phones,omitempty"`
	Records  []RecordItem `json:"records"`
}

// Business is a geocoded business as served by the /comercios endpoint.
type Business struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Phone   *string  `json:"phone"`
	Address *Address `json:"address,omitempty"`
}
