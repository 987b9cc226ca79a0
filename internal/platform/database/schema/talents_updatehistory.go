package schema

// TalentUpdateHistoryTable represents the append-only 'talents.updatehistory' table
type TalentUpdateHistoryTable struct {
	Table          string
	ID             string
	ProfileID      string
	UpdatedBy      string
	PreviousStatus string
	NewStatus      string
	ChangesSummary string
	CreatedAt      string
}

// TalentUpdateHistory is the schema definition for talents.updatehistory
//
// Rows in this table are written exactly once per status transition and are
// never updated or deleted.
var TalentUpdateHistory = TalentUpdateHistoryTable{
	Table:          "talents.updatehistory",
	ID:             "id",
	ProfileID:      "profileid",
	UpdatedBy:      "updatedby",
	PreviousStatus: "previousstatus",
	NewStatus:      "newstatus",
	ChangesSummary: "changessummary",
	CreatedAt:      "createdat",
}
