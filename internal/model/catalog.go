package model

import "github.com/shopspring/decimal"

var formats = []string{"Vinyl", "CD"}

var genres = []string{"Rock", "Pop", "Jazz", "Hip-Hop", "Classical", "Electronic"}

// Formats returns the media formats offered by the shop.
func Formats() []string {
	return append([]string(nil), formats...)
}

// Genres returns the genres offered by the shop.
func Genres() []string {
	return append([]string(nil), genres...)
}

// DemoUsers is the staff directory the shop ships with.
func DemoUsers() []User {
	return []User{
		{ID: 1, Email: "clerk@recordshop.com", Password: "password", Role: RoleClerk, Name: "Chris Clerk"},
		{ID: 2, Email: "manager@recordshop.com", Password: "password", Role: RoleManager, Name: "Mandy Manager"},
		{ID: 3, Email: "admin@recordshop.com", Password: "password", Role: RoleAdmin, Name: "Alex Admin"},
	}
}

// DemoRecords is the starting inventory. Ids 1..6 are taken, so the next record gets 7.
func DemoRecords() []Record {
	return []Record{
		demoRecord(1, "Californication", "Red Hot Chili Peppers", "Vinyl", "Rock", 1999, "29.99", 8),
		demoRecord(2, "Black Summer", "Red Hot Chili Peppers", "CD", "Rock", 2022, "14.99", 12),
		demoRecord(3, "Audioslave", "Audioslave", "Vinyl", "Rock", 2002, "27.99", 6),
		demoRecord(4, "Stony Hill", "Damian Marley", "CD", "Reggae", 2017, "12.99", 9),
		demoRecord(5, "The Bends", "Radiohead", "Vinyl", "Alternative", 1995, "26.99", 5),
		demoRecord(6, "OK Computer", "Radiohead", "Vinyl", "Alternative", 1997, "28.99", 4),
	}
}

func demoRecord(id uint, title, artist, format, genre string, year int, price string, stock int) Record {
	return Record{
		ID:          id,
		Title:       title,
		Artist:      artist,
		Format:      format,
		Genre:       genre,
		ReleaseYear: year,
		Price:       decimal.RequireFromString(price),
		StockQty:    stock,
	}
}
