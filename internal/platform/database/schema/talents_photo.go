package schema

// TalentPhotoTable represents the 'talents.photo' table
type TalentPhotoTable struct {
	Table      string
	ID         string
	ProfileID  string
	ImageURL   string
	Caption    string
	IsApproved string
	CreatedAt  string
}

// TalentPhoto is the schema definition for talents.photo
var TalentPhoto = TalentPhotoTable{
	Table:      "talents.photo",
	ID:         "id",
	ProfileID:  "profileid",
	ImageURL:   "imageurl",
	Caption:    "caption",
	IsApproved: "isapproved",
	CreatedAt:  "createdat",
}
