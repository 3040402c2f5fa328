package model

import (
	"strings"
	"time"
)

// Player is a registered league player. APD is the federation licence number.
type Player struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	APD             *string    `json:"apd,omitempty"`
	APDValidateDate *time.Time `json:"apdValidateDate,omitempty"`
	Team            *string    `json:"team,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PlayerView is the serialized form of a player, carrying the derived licence state
type PlayerView struct {
	*Player
	APDIsValid bool `json:"apdIsValid"`
}

// APDIsValid reports whether a licence is present and not expired at now
func APDIsValid(apd *string, validUntil *time.Time, now time.Time) bool {
	if apd == nil || *apd == "" || validUntil == nil {
		return false
	}
	return !validUntil.Before(now)
}

// View derives apdIsValid for serialization
func (p *Player) View(now time.Time) PlayerView {
	return PlayerView{
		Player:     p,
		APDIsValid: APDIsValid(p.APD, p.APDValidateDate, now),
	}
}

// PlayerViews maps players to their serialized form
func PlayerViews(players []*Player, now time.Time) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, p.View(now))
	}
	return views
}

// NormalizeAPD trims and uppercases a licence number; blank means absent
func NormalizeAPD(apd *string) *string {
	v := blankToNil(apd)
	if v == nil {
		return nil
	}
	upper := strings.ToUpper(*v)
	return &upper
}

// CreatePlayerRequest represents a request to register a player
type CreatePlayerRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	APD             *string `json:"apd,omitempty" validate:"omitnil,max=64"`
	APDValidateDate *string `json:"apdValidateDate,omitempty" validate:"omitnil,isodate"`
	Team            *string `json:"team,omitempty" validate:"omitnil,max=200"`
}

// Validate normalizes fields in place and checks every rule
func (r *CreatePlayerRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.APD = NormalizeAPD(r.APD)
	r.APDValidateDate = blankToNil(r.APDValidateDate)
	r.Team = blankToNil(r.Team)

	return ValidateStruct(r)
}

// Player builds the document to persist
func (r *CreatePlayerRequest) Player() *Player {
	return &Player{
		Name:            r.Name,
		APD:             r.APD,
		APDValidateDate: parseDatePtr(r.APDValidateDate),
		Team:            r.Team,
	}
}

// UpdatePlayerRequest carries a partial update. Nil fields are left unchanged;
// an empty string clears apd, apdValidateDate or team.
type UpdatePlayerRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	APD             *string `json:"apd,omitempty" validate:"omitnil,max=64"`
	APDValidateDate *string `json:"apdValidateDate,omitempty" validate:"omitnil,isodate"`
	Team            *string `json:"team,omitempty" validate:"omitnil,max=200"`

	clearAPD             bool
	clearAPDValidateDate bool
	clearTeam            bool
}

// Validate normalizes fields in place and checks every rule
func (r *UpdatePlayerRequest) Validate() []FieldError {
	trimPtr(r.Name)

	if r.APD != nil {
		r.APD = NormalizeAPD(r.APD)
		r.clearAPD = r.APD == nil
	}
	if r.APDValidateDate != nil {
		r.APDValidateDate = blankToNil(r.APDValidateDate)
		r.clearAPDValidateDate = r.APDValidateDate == nil
	}
	if r.Team != nil {
		r.Team = blankToNil(r.Team)
		r.clearTeam = r.Team == nil
	}

	return ValidateStruct(r)
}

// Changes returns the document fields to overwrite. A nil value removes the field.
func (r *UpdatePlayerRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	switch {
	case r.APD != nil:
		changes["apd"] = *r.APD
	case r.clearAPD:
		changes["apd"] = nil
	}
	switch {
	case r.APDValidateDate != nil:
		changes["apdValidateDate"] = *parseDatePtr(r.APDValidateDate)
	case r.clearAPDValidateDate:
		changes["apdValidateDate"] = nil
	}
	switch {
	case r.Team != nil:
		changes["team"] = *r.Team
	case r.clearTeam:
		changes["team"] = nil
	}
	return changes
}
