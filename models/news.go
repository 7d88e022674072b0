package models

// NewsAuthor is the embedded author record on a news item.
type NewsAuthor struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	EmailVerifiedAt *string `json:"email_verified_at"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// Address is a geocoded street address attached to records and news.
type Address struct {
	ID            int     `json:"id"`
	StreetAddress string  `json:"street_address"`
	BarrioID      int     `json:"barrio_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// PersonRecord links a news item to a person's geocoded record.
type PersonRecord struct {
	ID          int      `json:"id"`
	PersonID    int      `json:"person_id"`
	SourceID    int      `json:"source_id"`
	AddressID   int      `json:"address_id"`
	RowNumber   *int     `json:"row_number"`
	UserID      *int     `json:"user_id"`
	Description *string  `json:"description"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// NewsItem is a news record as served by the remote API.
type NewsItem struct {
	ID             int           `json:"id"`
	UserID         int           `json:"user_id"`
	PersonRecordID *int          `json:"person_record_id"`
	AddressID      *int          `json:"address_id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Src            *string       `json:"src"`
	Mime           *string       `json:"mime"`
	Size           *int          `json:"size"`
	CreatedAt      string        `json:"created_at"`
	UpdatedAt      string        `json:"updated_at"`
	Author         NewsAuthor    `json:"author"`
	PersonRecord   *PersonRecord `json:"person_record,omitempty"`
	Address        *Address      `json:"address,omitempty"`
}

// NewsForm carries the fields of the create/update news screens. The
// association fields mirror the wire exactly: nil leaves the association
// untouched, "" disassociates, a numeric string sets it.
type NewsForm struct {
	Title          string
	Content        string
	PersonRecordID *string
	AddressID      *string
	ImageName      string
	Image          []byte
}
