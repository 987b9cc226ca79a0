package schema

// TalentVideoTable represents the 'talents.video' table
type TalentVideoTable struct {
	Table      string
	ID         string
	ProfileID  string
	Title      string
	Platform   string
	VideoURL   string
	Duration   string
	IsApproved string
	CreatedAt  string
}

// TalentVideo is the schema definition for talents.video
var TalentVideo = TalentVideoTable{
	Table:      "talents.video",
	ID:         "id",
	ProfileID:  "profileid",
	Title:      "title",
	Platform:   "platform",
	VideoURL:   "videourl",
	Duration:   "duration",
	IsApproved: "isapproved",
	CreatedAt:  "createdat",
}
