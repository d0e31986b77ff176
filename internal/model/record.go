package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the way the staff client sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is one inventory line: a music title plus the customer data embedded in the row.
type Record struct {
	ID                uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Title             string          `json:"title" gorm:"size:255;not null;index"`
	Artist            string          `json:"artist" gorm:"size:255;not null;index"`
	Format            string          `json:"format" gorm:"size:20"`
	Genre             string          `json:"genre" gorm:"size:50;index"`
	ReleaseYear       int             `json:"releaseYear"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	StockQty          int             `json:"stockQty" gorm:"not null;default:0"`
	CustomerID        string          `json:"customerId" gorm:"column:customer_id;size:32"`
	CustomerFirstName string          `json:"customerFirstName" gorm:"size:100"`
	CustomerLastName  string          `json:"customerLastName" gorm:"size:100"`
	CustomerContact   string          `json:"customerContact" gorm:"size:32"`
	CustomerEmail     string          `json:"customerEmail" gorm:"size:255"`
	CreatedAt         time.Time       `json:"-"`
	UpdatedAt         time.Time       `json:"-"`
}

// CustomerName joins the customer's first and last name the way exports print it.
func (r Record) CustomerName() string {
	return r.CustomerFirstName + " " + r.CustomerLastName
}

// CustomerDisplay is the short customer label used in record listings.
func (r Record) CustomerDisplay() string {
	if r.CustomerLastName != "" {
		return r.CustomerLastName + " (" + r.CustomerID + ")"
	}
	if r.CustomerID != "" {
		return r.CustomerID
	}
	return "N/A"
}

// RecordInput carries the fields of a record to create. The store assigns the id.
type RecordInput struct {
	Title             string          `json:"title" validate:"required"`
	Artist            string          `json:"artist" validate:"required"`
	Format            string          `json:"format" validate:"required"`
	Genre             string          `json:"genre" validate:"required"`
	ReleaseYear       int             `json:"releaseYear" validate:"required,min=1900,notfuture"`
	Price             decimal.Decimal `json:"price" validate:"min=0"`
	StockQty          int             `json:"stockQty" validate:"min=0"`
	CustomerID        string          `json:"customerId" validate:"required,customerid"`
	CustomerFirstName string          `json:"customerFirstName" validate:"required"`
	CustomerLastName  string          `json:"customerLastName" validate:"required"`
	CustomerContact   string          `json:"customerContact" validate:"required,contact"`
	CustomerEmail     string          `json:"customerEmail" validate:"required,shopemail"`
}

// ToRecord builds an unsaved record from the input.
func (in RecordInput) ToRecord() Record {
	return Record{
		Title:             in.Title,
		Artist:            in.Artist,
		Format:            in.Format,
		Genre:             in.Genre,
		ReleaseYear:       in.ReleaseYear,
		Price:             in.Price,
		StockQty:          in.StockQty,
		CustomerID:        in.CustomerID,
		CustomerFirstName: in.CustomerFirstName,
		CustomerLastName:  in.CustomerLastName,
		CustomerContact:   in.CustomerContact,
		CustomerEmail:     in.CustomerEmail,
	}
}

// RecordPatch is a partial update. Nil fields are left untouched. There is no
// id field, so a body carrying "id" cannot renumber a record.
type RecordPatch struct {
	Title             *string          `json:"title,omitempty"`
	Artist            *string          `json:"artist,omitempty"`
	Format            *string          `json:"format,omitempty"`
	Genre             *string          `json:"genre,omitempty"`
	ReleaseYear       *int             `json:"releaseYear,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	StockQty          *int             `json:"stockQty,omitempty"`
	CustomerID        *string          `json:"customerId,omitempty"`
	CustomerFirstName *string          `json:"customerFirstName,omitempty"`
	CustomerLastName  *string          `json:"customerLastName,omitempty"`
	CustomerContact   *string          `json:"customerContact,omitempty"`
	CustomerEmail     *string          `json:"customerEmail,omitempty"`
}

// PatchFromInput turns a full input into a patch that replaces every field.
func PatchFromInput(in RecordInput) RecordPatch {
	return RecordPatch{
		Title:             &in.Title,
		Artist:            &in.Artist,
		Format:            &in.Format,
		Genre:             &in.Genre,
		ReleaseYear:       &in.ReleaseYear,
		Price:             &in.Price,
		StockQty:          &in.StockQty,
		CustomerID:        &in.CustomerID,
		CustomerFirstName: &in.CustomerFirstName,
		CustomerLastName:  &in.CustomerLastName,
		CustomerContact:   &in.CustomerContact,
		CustomerEmail:     &in.CustomerEmail,
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p RecordPatch) IsEmpty() bool {
	return p == RecordPatch{}
}

// Apply merges the present fields over r.
func (p RecordPatch) Apply(r *Record) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Artist != nil {
		r.Artist = *p.Artist
	}
	if p.Format != nil {
		r.Format = *p.Format
	}
	if p.Genre != nil {
		r.Genre = *p.Genre
	}
	if p.ReleaseYear != nil {
		r.ReleaseYear = *p.ReleaseYear
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.StockQty != nil {
		r.StockQty = *p.StockQty
	}
	if p.CustomerID != nil {
		r.CustomerID = *p.CustomerID
	}
	if p.CustomerFirstName != nil {
		r.CustomerFirstName = *p.CustomerFirstName
	}
	if p.CustomerLastName != nil {
		r.CustomerLastName = *p.CustomerLastName
	}
	if p.CustomerContact != nil {
		r.CustomerContact = *p.CustomerContact
	}
	if p.CustomerEmail != nil {
		r.CustomerEmail = *p.CustomerEmail
	}
}

// Input returns the record's editable fields.
func (r Record) Input() RecordInput {
	return RecordInput{
		Title:             r.Title,
		Artist:            r.Artist,
		Format:            r.Format,
		Genre:             r.Genre,
		ReleaseYear:       r.ReleaseYear,
		Price:             r.Price,
		StockQty:          r.StockQty,
		CustomerID:        r.CustomerID,
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		CustomerContact:   r.CustomerContact,
		CustomerEmail:     r.CustomerEmail,
	}
}
