package game

import "strings"

// Challenge is a location-bound task. ID is the stable identity;
// Title is display text, unique in the catalog, and also the key
// recorded in a team's completed set.
type Challenge struct {
	ID          string
	Title       string
	Location    string
	Lat         float64
	Lng         float64
	Zone        int
	Points      int
	Description string
	Link        string
}

// Challenges is the static catalog, in display order.
var Challenges = []Challenge{
	{
		ID:          "fancy-washroom",
		Title:       "Fancy Washroom",
		Location:    "Fairmont Château Laurier",
		Lat:         45.42566,
		Lng:         -75.69529,
		Zone:        8,
		Points:      300,
		Description: "Have a team member use a toilet in the Fairmont Château Laurier.",
		Link:        "https://maps.google.com/?cid=8854846295512453637",
	},
	{
		ID:          "recreate-maman",
		Title:       "Recreate Maman",
		Location:    "National Gallery of Canada",
		Lat:         45.42935,
		Lng:         -75.69727,
		Zone:        8,
		Points:      100,
		Description: "Take a photo of one team member making a bridge or four-legged pose and another overtop of them to be the other four spider legs.",
		Link:        "https://maps.google.com/?cid=7418760184671049655",
	},
	{
		ID:          "explore-for-an-explorer",
		Title:       "Explore for an Explorer",
		Location:    "Kìwekì Point",
		Lat:         45.4296,
		Lng:         -75.70098,
		Zone:        8,
		Points:      200,
		Description: "Find and recreate the Samuel de Champlain statue at Kìwekì Point without looking up its exact location (it is in the park).",
		Link:        "https://maps.google.com/?cid=10074131504615629002",
	},
	{
		ID:          "centennial-flame",
		Title:       "Flame Keeper",
		Location:    "Parliament Hill",
		Lat:         45.42416,
		Lng:         -75.69908,
		Zone:        5,
		Points:      200,
		Description: "Take a team photo around the Centennial Flame with everyone's hands hovering over the water.",
		Link:        "https://maps.google.com/?q=Centennial+Flame",
	},
	{
		ID:          "beavertail-boast",
		Title:       "Beavertail Boast",
		Location:    "ByWard Market",
		Lat:         45.42748,
		Lng:         -75.69222,
		Zone:        9,
		Points:      100,
		Description: "Buy one BeaverTail and film every team member taking a bite of it.",
		Link:        "https://maps.google.com/?q=ByWard+Market",
	},
	{
		ID:          "lock-step",
		Title:       "Lock Step",
		Location:    "Rideau Canal Locks",
		Lat:         45.42528,
		Lng:         -75.69734,
		Zone:        5,
		Points:      150,
		Description: "Walk the full flight of the Ottawa Locks and count them out loud on video.",
		Link:        "https://maps.google.com/?q=Ottawa+Locks",
	},
	{
		ID:          "spark-of-genius",
		Title:       "Spark of Genius",
		Location:    "Sparks Street",
		Lat:         45.42146,
		Lng:         -75.69845,
		Zone:        5,
		Points:      100,
		Description: "Find a statue on Sparks Street and mirror its pose exactly for a photo.",
		Link:        "https://maps.google.com/?q=Sparks+Street",
	},
	{
		ID:          "national-treasure",
		Title:       "National Treasure",
		Location:    "National War Memorial",
		Lat:         45.42381,
		Lng:         -75.69520,
		Zone:        5,
		Points:      150,
		Description: "Learn the name of one figure group on the memorial from a passerby, not your phone.",
		Link:        "https://maps.google.com/?q=National+War+Memorial",
	},
	{
		ID:          "market-bargain",
		Title:       "Market Bargain",
		Location:    "ByWard Market Square",
		Lat:         45.42790,
		Lng:         -75.69150,
		Zone:        9,
		Points:      300,
		Description: "Trade something your team is carrying for something a vendor or stranger is carrying. Keep the receipt item.",
		Link:        "https://maps.google.com/?q=ByWard+Market+Square",
	},
}

// ChallengeByID looks a challenge up in the catalog.
func ChallengeByID(id string) (Challenge, bool) {
	for _, c := range Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

// VisibleChallenges returns the catalog entries the team has not yet
// completed, in catalog order.
func VisibleChallenges(t *TeamState) []Challenge {
	var out []Challenge
	for _, c := range Challenges {
		if !t.Completed(c.Title) {
			out = append(out, c)
		}
	}
	return out
}

// MatchChallenge resolves a clicked map popup's text to a challenge by
// substring containment of the title, skipping entries the team has
// completed. First catalog match wins.
func MatchChallenge(popupText string, t *TeamState) (Challenge, bool) {
	for _, c := range Challenges {
		if strings.Contains(popupText, c.Title) && !t.Completed(c.Title) {
			return c, true
		}
	}
	return Challenge{}, false
}
