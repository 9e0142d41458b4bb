package models

// Module is a catalog entry from the THM module handbook. The pool string is
// the primary key and doubles as the catalog bucket the module belongs to
// (e.g. "Orientierungsphase"). Reference data: written by seeding and the
// admin catalog sync, never by end users.
type Module struct {
	Pool     string `json:"pool" gorm:"primaryKey"`
	Code     string `json:"code" gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`
	Credits  int    `json:"credits" gorm:"not null"`
	Category string `json:"category" gorm:"not null"` // INF, MAN, MK, GS, MAT, II, NAT, GEN
}
