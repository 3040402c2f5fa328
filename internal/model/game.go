package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GameStatus is the lifecycle state of a game
type GameStatus string

const (
	GameStatusPlanned    GameStatus = "planned"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinished   GameStatus = "finished"
	GameStatusCancelled  GameStatus = "cancelled"
)

// IsValid returns true if the status is a known lifecycle state
func (s GameStatus) IsValid() bool {
	switch s {
	case GameStatusPlanned, GameStatusInProgress, GameStatusFinished, GameStatusCancelled:
		return true
	default:
		return false
	}
}

// GameDevice binds a field device to a game, optionally assigned to a player
type GameDevice struct {
	DeviceID         string  `json:"deviceId" validate:"required,max=200"`
	AssignedPlayerID *string `json:"assignedPlayerId" validate:"omitnil,max=200"`
}

// Group is a team within a game
type Group struct {
	ID         string `json:"id" validate:"max=100"`
	GroupName  string `json:"groupName" validate:"required,max=100"`
	GroupColor string `json:"groupColor" validate:"required,max=50"`
}

// GameSettings holds per-game configuration
type GameSettings struct {
	Groups []Group `json:"groups" validate:"omitempty,dive"`
}

// Game is a scheduled or played match
type Game struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Date         *time.Time   `json:"date,omitempty"`
	FieldMapID   *string      `json:"fieldMapId,omitempty"`
	Status       GameStatus   `json:"status"`
	GameDevices  []GameDevice `json:"gameDevices"`
	GameSettings GameSettings `json:"gameSettings"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DeviceAssignment is one planned game a device belongs to
type DeviceAssignment struct {
	GameID           string  `json:"gameId"`
	AssignedPlayerID *string `json:"assignedPlayerId"`
}

// DefaultGroups returns the two groups every game starts with, each with a fresh id
func DefaultGroups() []Group {
	return []Group{
		{ID: uuid.NewString(), GroupName: "Group 1", GroupColor: "red"},
		{ID: uuid.NewString(), GroupName: "Group 2", GroupColor: "no-color"},
	}
}

// NormalizeGroups assigns ids to groups that lack one. An empty list yields
// the default groups.
func NormalizeGroups(groups []Group) []Group {
	if len(groups) == 0 {
		return DefaultGroups()
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		out[i] = g
	}
	return out
}

// MatchDeviceAssignments scans games in order and returns an assignment for
// every planned game whose device list contains deviceID.
func MatchDeviceAssignments(games []*Game, deviceID string) []DeviceAssignment {
	matches := make([]DeviceAssignment, 0)
	for _, g := range games {
		if g == nil || g.Status != GameStatusPlanned {
			continue
		}
		for _, d := range g.GameDevices {
			if d.DeviceID == deviceID {
				matches = append(matches, DeviceAssignment{
					GameID:           g.ID,
					AssignedPlayerID: d.AssignedPlayerID,
				})
				break
			}
		}
	}
	return matches
}

// GroupDocs converts groups to plain documents, preserving order
func GroupDocs(groups []Group) []map[string]interface{} {
	docs := make([]map[string]interface{}, 0, len(groups))
	for _, g := range groups {
		docs = append(docs, map[string]interface{}{
			"id":         g.ID,
			"groupName":  g.GroupName,
			"groupColor": g.GroupColor,
		})
	}
	return docs
}

// GameDeviceDocs converts device bindings to plain documents, preserving order
func GameDeviceDocs(devices []GameDevice) []map[string]interface{} {
	docs := make([]map[string]interface{}, 0, len(devices))
	for _, d := range devices {
		doc := map[string]interface{}{"deviceId": d.DeviceID}
		if d.AssignedPlayerID != nil {
			doc["assignedPlayerId"] = *d.AssignedPlayerID
		} else {
			doc["assignedPlayerId"] = nil
		}
		docs = append(docs, doc)
	}
	return docs
}

// CreateGameRequest represents a request to schedule a game
type CreateGameRequest struct {
	Name         string        `json:"name" validate:"required,max=200"`
	Date         *string       `json:"date,omitempty" validate:"omitnil,isodate"`
	FieldMapID   *string       `json:"fieldMapId,omitempty" validate:"omitnil,max=200"`
	Status       GameStatus    `json:"status,omitempty" validate:"omitempty,oneof=planned in_progress finished cancelled"`
	GameDevices  []GameDevice  `json:"gameDevices,omitempty" validate:"omitempty,dive"`
	GameSettings *GameSettings `json:"gameSettings,omitempty"`
}

// Validate normalizes fields in place and checks every rule
func (r *CreateGameRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Date = blankToNil(r.Date)
	r.FieldMapID = blankToNil(r.FieldMapID)
	r.Status = GameStatus(strings.TrimSpace(string(r.Status)))
	trimGameDevices(r.GameDevices)
	if r.GameSettings != nil {
		trimGroups(r.GameSettings.Groups)
	}

	return ValidateStruct(r)
}

// Game builds the document to persist, applying defaults
func (r *CreateGameRequest) Game() *Game {
	g := &Game{
		Name:        r.Name,
		Date:        parseDatePtr(r.Date),
		FieldMapID:  r.FieldMapID,
		Status:      GameStatusPlanned,
		GameDevices: make([]GameDevice, 0, len(r.GameDevices)),
	}
	if r.Status != "" {
		g.Status = r.Status
	}
	g.GameDevices = append(g.GameDevices, r.GameDevices...)

	var groups []Group
	if r.GameSettings != nil {
		groups = r.GameSettings.Groups
	}
	g.GameSettings.Groups = NormalizeGroups(groups)
	return g
}

// UpdateGameRequest carries a partial update. Nil fields are left unchanged;
// an empty string clears date or fieldMapId, and a non-nil gameDevices
// replaces the whole list.
type UpdateGameRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	Date        *string      `json:"date,omitempty" validate:"omitnil,isodate"`
	FieldMapID  *string      `json:"fieldMapId,omitempty" validate:"omitnil,max=200"`
	Status      *GameStatus  `json:"status,omitempty" validate:"omitnil,oneof=planned in_progress finished cancelled"`
	GameDevices []GameDevice `json:"gameDevices" validate:"omitempty,dive"`

	clearDate       bool
	clearFieldMapID bool
}

// Validate normalizes fields in place and checks every rule
func (r *UpdateGameRequest) Validate() []FieldError {
	trimPtr(r.Name)
	if r.Date != nil {
		r.Date = blankToNil(r.Date)
		r.clearDate = r.Date == nil
	}
	if r.FieldMapID != nil {
		r.FieldMapID = blankToNil(r.FieldMapID)
		r.clearFieldMapID = r.FieldMapID == nil
	}
	if r.Status != nil {
		s := GameStatus(strings.TrimSpace(string(*r.Status)))
		r.Status = &s
	}
	trimGameDevices(r.GameDevices)

	return ValidateStruct(r)
}

// Changes returns the document fields to overwrite. A nil value removes the field.
func (r *UpdateGameRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	switch {
	case r.Date != nil:
		changes["date"] = *parseDatePtr(r.Date)
	case r.clearDate:
		changes["date"] = nil
	}
	switch {
	case r.FieldMapID != nil:
		changes["fieldMapId"] = *r.FieldMapID
	case r.clearFieldMapID:
		changes["fieldMapId"] = nil
	}
	if r.Status != nil {
		changes["status"] = string(*r.Status)
	}
	if r.GameDevices != nil {
		changes["gameDevices"] = GameDeviceDocs(r.GameDevices)
	}
	return changes
}

// UpdateGameSettingsRequest replaces a game's groups
type UpdateGameSettingsRequest struct {
	Groups []Group `json:"groups" validate:"omitempty,dive"`
}

// Validate trims group fields in place and checks every rule
func (r *UpdateGameSettingsRequest) Validate() []FieldError {
	trimGroups(r.Groups)
	return ValidateStruct(r)
}

// SearchGamesRequest looks up planned games by device
type SearchGamesRequest struct {
	DeviceID string `json:"deviceId" validate:"required,max=200"`
}

// Validate trims the device id and checks it is present
func (r *SearchGamesRequest) Validate() []FieldError {
	r.DeviceID = strings.TrimSpace(r.DeviceID)
	return ValidateStruct(r)
}

func trimGameDevices(devices []GameDevice) {
	for i := range devices {
		devices[i].DeviceID = strings.TrimSpace(devices[i].DeviceID)
		devices[i].AssignedPlayerID = blankToNil(devices[i].AssignedPlayerID)
	}
}

func trimGroups(groups []Group) {
	for i := range groups {
		groups[i].ID = strings.TrimSpace(groups[i].ID)
		groups[i].GroupName = strings.TrimSpace(groups[i].GroupName)
		groups[i].GroupColor = strings.TrimSpace(groups[i].GroupColor)
	}
}
