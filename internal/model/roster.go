package model

import "time"

// PlayerRecord is one player's entry on the injury report
type PlayerRecord struct {
	Number      int
	Name        string
	Position    string
	Injury      string
	Status      string
	LastUpdated time.Time
}

// RosterSize is the fixed number of players on the demo roster
const RosterSize = 12

// seedPlayers is the fictional Washington Sentinels roster. Entries are
// never added or removed within a session, only mutated.
var seedPlayers = []PlayerRecord{
	{Number: 1, Name: "Marcus Reed", Position: "QB", Injury: "Right shoulder strain", Status: "Day-to-day – limited throws only"},
	{Number: 22, Name: "Devin Cole", Position: "RB", Injury: "Left hamstring tightness", Status: "Limited practice – no full-speed cuts"},
	{Number: 11, Name: "Tyler Brooks", Position: "WR", Injury: "Concussion (Phase 2)", Status: "Non-contact drills only"},
	{Number: 17, Name: "Jalen Ortiz", Position: "WR", Injury: "Right ankle sprain", Status: "Out 1–2 weeks – rehab only"},
	{Number: 85, Name: "Cameron Price", Position: "TE", Injury: "Rib contusion", Status: "No live contact, individual periods only"},
	{Number: 52, Name: "Malik Harris", Position: "LB", Injury: "Patellar tendinitis (right knee)", Status: "Practice reps managed – no back-to-back full days"},
	{Number: 24, Name: "Isaiah Grant", Position: "CB", Injury: "Groin strain", Status: "Day-to-day – avoid long sprints"},
	{Number: 33, Name: "Andre Walker", Position: "S", Injury: "Fractured right thumb", Status: "Club cast – can practice, monitor contact"},
	{Number: 72, Name: "Logan Hayes", Position: "LT", Injury: "Lower back spasms", Status: "Questionable – limited team periods"},
	{Number: 90, Name: "Jordan Fox", Position: "DE", Injury: "Calf strain", Status: "Individual drills only, no full-speed rushes"},
	{Number: 3, Name: "Eli Summers", Position: "K", Injury: "Right quad strain", Status: "Short-range kicks only, no max effort"},
	{Number: 60, Name: "Nate Dawson", Position: "C", Injury: "Left hand sprain", Status: "Full participation with taped support"},
}

// SeedRoster returns a fresh copy of the fixed roster with LastUpdated
// stamped to the given time
func SeedRoster(now time.Time) []PlayerRecord {
	roster := make([]PlayerRecord, len(seedPlayers))
	copy(roster, seedPlayers)
	for i := range roster {
		roster[i].LastUpdated = now
	}
	return roster
}
