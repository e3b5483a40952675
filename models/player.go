package models

import "fmt"

// Player is immutable roster reference data. The engine never mutates it.
type Player struct {
	PlayerId string `dynamodbav:"player_id" json:"id"`
	Name     string `dynamodbav:"name" json:"name"`
	Color    string `dynamodbav:"color" json:"color"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`

	GSI1PK string `dynamodbav:"GSI1PK" json:"-"`
	GSI1SK string `dynamodbav:"GSI1SK" json:"-"`
}

// Key handlers

func PlayerPK(playerID string) string {
	return fmt.Sprintf("PLAYER#%s", playerID)
}

func ProfileSK() string {
	return "PROFILE"
}

func PlayerGSI1PK() string {
	return "PLAYER"
}

func PlayerNameGSI1SK(name string) string {
	return fmt.Sprintf("NAME#%s", name)
}

func ExtractPlayerID(pk string) (string, error) {
	if len(pk) < 8 || pk[:7] != "PLAYER#" {
		return "", fmt.Errorf("invalid player PK format: %s", pk)
	}
	return pk[7:], nil
}
