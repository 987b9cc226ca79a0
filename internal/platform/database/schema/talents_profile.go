package schema

// TalentProfileTable represents the 'talents.profile' table
type TalentProfileTable struct {
	Table             string
	ID                string
	AccountID         string
	PublicID          string
	RegistrationType  string
	GroupName         string
	Phone             string
	EmailPrivate      string
	City              string
	Role              string
	Experience        string
	Bio               string
	ProfileImageURL   string
	CVFileURL         string
	Height            string
	GenderIdentity    string
	Pronouns          string
	HairColor         string
	EyeColor          string
	Agency            string
	UnionAffiliations string
	Availability      string
	Status            string
	IsPubliclyVisible string
	LastApprovedAt    string
	ApprovedBy        string
	CreatedAt         string
	UpdatedAt         string
}

// TalentProfile is the schema definition for talents.profile
var TalentProfile = TalentProfileTable{
	Table:             "talents.profile",
	ID:                "id",
	AccountID:         "accountid",
	PublicID:          "publicid",
	RegistrationType:  "registrationtype",
	GroupName:         "groupname",
	Phone:             "phone",
	EmailPrivate:      "emailprivate",
	City:              "city",
	Role:              "role",
	Experience:        "experience",
	Bio:               "bio",
	ProfileImageURL:   "profileimageurl",
	CVFileURL:         "cvfileurl",
	Height:            "height",
	GenderIdentity:    "genderidentity",
	Pronouns:          "pronouns",
	HairColor:         "haircolor",
	EyeColor:          "eyecolor",
	Agency:            "agency",
	UnionAffiliations: "unionaffiliations",
	Availability:      "availability",
	Status:            "status",
	IsPubliclyVisible: "ispubliclyvisible",
	LastApprovedAt:    "lastapprovedat",
	ApprovedBy:        "approvedby",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t TalentProfileTable) Columns() []string {
	return []string{
		t.ID, t.AccountID, t.PublicID, t.RegistrationType, t.GroupName,
		t.Phone, t.EmailPrivate, t.City, t.Role, t.Experience, t.Bio,
		t.ProfileImageURL, t.CVFileURL, t.Height, t.GenderIdentity,
		t.Pronouns, t.HairColor, t.EyeColor, t.Agency, t.UnionAffiliations,
		t.Availability, t.Status, t.IsPubliclyVisible, t.LastApprovedAt,
		t.ApprovedBy, t.CreatedAt, t.UpdatedAt,
	}
}
