package api

import (
	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/personal"
	"github.com/ssargent/pkcore/pkg/transfer"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port          int
	Bind          string
	APIKey        string
	MaxUploadSize int64 // largest accepted request body in bytes
}

// RecordView is the JSON summary of a record
type RecordView struct {
	ID            string                `json:"id,omitempty"`
	Generation    string                `json:"generation"`
	Species       uint16                `json:"species"`
	SpeciesName   string                `json:"species_name,omitempty"`
	Form          uint8                 `json:"form"`
	Nickname      string                `json:"nickname"`
	OTName        string                `json:"ot_name"`
	OTGender      string                `json:"ot_gender"`
	TID           uint32                `json:"tid"`
	SID           uint32                `json:"sid"`
	PID           uint32                `json:"pid"`
	EC            uint32                `json:"encryption_constant"`
	Level         int                   `json:"level"`
	Experience    uint32                `json:"experience"`
	Nature        uint8                 `json:"nature"`
	Gender        string                `json:"gender"`
	Ability       uint16                `json:"ability"`
	AbilityNumber int                   `json:"ability_number"`
	HeldItem      uint16                `json:"held_item"`
	Ball          uint8                 `json:"ball"`
	Moves         [4]uint16             `json:"moves"`
	IVs           [derive.StatCount]int `json:"ivs"`
	EVs           [derive.StatCount]int `json:"evs"`
	Shiny         bool                  `json:"shiny"`
	IsEgg         bool                  `json:"is_egg"`
	Party         bool                  `json:"party"`
	Language      uint8                 `json:"language"`
	Version       string                `json:"version"`
	MetLocation   uint16                `json:"met_location"`
	MetLevel      int                   `json:"met_level"`
	ChecksumValid bool                  `json:"checksum_valid"`
}

// NewRecordView summarises r. Box-length records have no stored level, so it
// is derived from experience.
func NewRecordView(id string, r codec.Record, tables personal.Provider) RecordView {
	table := tables.For(r.Generation())
	v := RecordView{
		ID:            id,
		Generation:    r.Generation().String(),
		Species:       r.Species(),
		SpeciesName:   table.Name(r.Species()),
		Form:          r.Form(),
		Nickname:      r.Nickname(),
		OTName:        r.OTName(),
		OTGender:      r.OTGender().String(),
		TID:           r.DisplayTID(),
		SID:           r.DisplaySID(),
		PID:           r.PID(),
		EC:            r.EncryptionConstant(),
		Level:         r.Level(),
		Experience:    r.Experience(),
		Nature:        r.Nature(),
		Gender:        r.Gender().String(),
		Ability:       r.Ability(),
		AbilityNumber: r.AbilityNumber(),
		HeldItem:      r.HeldItem(),
		Ball:          r.Ball(),
		Shiny:         r.Shiny(),
		IsEgg:         r.IsEgg(),
		Party:         r.IsParty(),
		Language:      uint8(r.Language()),
		Version:       r.Version().String(),
		MetLocation:   r.MetLocation(),
		MetLevel:      r.MetLevel(),
		ChecksumValid: r.ChecksumValid(),
	}
	if v.Level == codec.NotApplicable {
		info := table.Info(r.Species(), r.Form())
		v.Level = derive.LevelFromExperience(r.Experience(), info.Growth)
	}
	for i := range v.Moves {
		v.Moves[i] = r.Move(i)
	}
	for _, s := range derive.Stats {
		v.IVs[s] = r.IV(s)
		v.EVs[s] = r.EV(s)
	}
	return v
}

// PutResponse is returned after a record is banked
type PutResponse struct {
	ID         string `json:"id"`
	Generation string `json:"generation"`
}

// ConvertResponse carries a converted record and what the conversion lost
type ConvertResponse struct {
	ID             string     `json:"id,omitempty"`
	Path           []string   `json:"path"`
	Dropped        []string   `json:"dropped,omitempty"`
	LiteralAbility bool       `json:"literal_ability"`
	Record         RecordView `json:"record"`
}

func newConvertResponse(id string, rep *transfer.Report, view RecordView) ConvertResponse {
	resp := ConvertResponse{ID: id, LiteralAbility: rep.LiteralAbility, Record: view}
	for _, g := range rep.Path {
		resp.Path = append(resp.Path, g.String())
	}
	for _, d := range rep.Dropped {
		resp.Dropped = append(resp.Dropped, d.String())
	}
	return resp
}
