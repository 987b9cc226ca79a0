package schema

// TalentPublicIDCounterTable represents the 'talents.publicidcounter' table
type TalentPublicIDCounterTable struct {
	Table string
	Year  string
	Value string
}

// TalentPublicIDCounter is the schema definition for talents.publicidcounter.
//
// One row per calendar year; the value is bumped atomically inside the
// profile-create transaction so generated public IDs never collide.
var TalentPublicIDCounter = TalentPublicIDCounterTable{
	Table: "talents.publicidcounter",
	Year:  "year",
	Value: "value",
}
