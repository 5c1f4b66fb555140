package models

// Per-game decisions keyed by hole number. Games whose hole roles rotate
// (Wolf, Banker) only need a decision row where the rotation is overridden.

// WolfDecision overrides the rotating wolf for one hole: who the wolf is,
// the partner they picked (nil when going alone) and the lone/blind flags.
type WolfDecision struct {
	HoleNumber    int    `json:"hole_number"`
	WolfUserID    int64  `json:"wolf_user_id"`
	PartnerUserID *int64 `json:"partner_user_id"`
	IsLoneWolf    bool   `json:"is_lone_wolf"`
	IsBlind       bool   `json:"is_blind"`
}

// VegasTeam fixes one of the two 2-player Vegas teams for the whole round.
type VegasTeam struct {
	TeamNumber int   `json:"team_number"` // 1 or 2
	Player1ID  int64 `json:"player1_id"`
	Player2ID  int64 `json:"player2_id"`
}

// BankerDecision overrides the rotating banker for one hole.
type BankerDecision struct {
	HoleNumber   int   `json:"hole_number"`
	BankerUserID int64 `json:"banker_user_id"`
}

// BingoBangoBongoPoint records the externally judged winners of the three
// per-hole points: first on the green, closest once all on, first to hole out.
// Any of them may be nil when the point was not awarded.
type BingoBangoBongoPoint struct {
	HoleNumber  int    `json:"hole_number"`
	BingoUserID *int64 `json:"bingo_user_id"`
	BangoUserID *int64 `json:"bango_user_id"`
	BongoUserID *int64 `json:"bongo_user_id"`
}
