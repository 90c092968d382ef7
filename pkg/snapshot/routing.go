package snapshot

import (
	"slices"
	"strings"

	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const (
	RoomEntrance   = "entrance"
	RoomLivingroom = "livingroom"
	RoomKitchen    = "kitchen"
	RoomBedroom    = "bedroom"
	RoomBathroom   = "bathroom"
)

// NormalizeRoom reduces a location label such as "Living Room - Sofa" to its
// room key, livingroom.
func NormalizeRoom(label string) string {
	room, _, _ := strings.Cut(label, " - ")
	room = strings.ToLower(strings.TrimSpace(room))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(room)
}

// deviceSuffix is the part of device_id after the last underscore.
func deviceSuffix(deviceID string) string {
	if i := strings.LastIndex(deviceID, "_"); i >= 0 {
		return deviceID[i+1:]
	}
	return ""
}

type pirSlot struct {
	room   string
	motion func(s *models.HomeStateSnapshot) *bool
}

var pirSlots = map[string]pirSlot{
	"1": {RoomEntrance, func(s *models.HomeStateSnapshot) *bool { return &s.EntrancePirMotion }},
	"2": {RoomLivingroom, func(s *models.HomeStateSnapshot) *bool { return &s.LivingroomPir1Motion }},
	"3": {RoomLivingroom, func(s *models.HomeStateSnapshot) *bool { return &s.LivingroomPir2Motion }},
	"4": {RoomKitchen, func(s *models.HomeStateSnapshot) *bool { return &s.KitchenPirMotion }},
	"5": {RoomBathroom, func(s *models.HomeStateSnapshot) *bool { return &s.BathroomPirMotion }},
	"6": {RoomBedroom, func(s *models.HomeStateSnapshot) *bool { return &s.BedroomPirMotion }},
}

func soundSlot(s *models.HomeStateSnapshot, room string) *float64 {
	switch room {
	case RoomLivingroom:
		return &s.LivingroomSoundDb
	case RoomKitchen:
		return &s.KitchenSoundDb
	case RoomBedroom:
		return &s.BedroomSoundDb
	case RoomBathroom:
		return &s.BathroomSoundDb
	}
	return nil
}

func coSlot(s *models.HomeStateSnapshot, room string) *float64 {
	switch room {
	case RoomLivingroom:
		return &s.LivingroomMq7CoPpm
	case RoomBedroom:
		return &s.BedroomMq7CoPpm
	}
	return nil
}

func loadCellSlot(s *models.HomeStateSnapshot, room, deviceID string) *float64 {
	switch room {
	case RoomBedroom:
		return &s.BedroomLoadcellKg
	case RoomKitchen:
		switch deviceSuffix(deviceID) {
		case "1":
			return &s.KitchenLoadcell1Kg
		case "2":
			return &s.KitchenLoadcell2Kg
		}
	}
	return nil
}

var buttonRooms = []string{RoomLivingroom, RoomKitchen, RoomBedroom, RoomBathroom}

func buttonSlot(s *models.HomeStateSnapshot, room string) **string {
	switch room {
	case RoomLivingroom:
		return &s.LivingroomButton
	case RoomKitchen:
		return &s.KitchenButton
	case RoomBedroom:
		return &s.BedroomButton
	case RoomBathroom:
		return &s.BathroomButton
	}
	return nil
}

func mentions(device models.Device, word string) bool {
	word = strings.ToLower(word)
	return strings.Contains(strings.ToLower(device.DeviceID), word) ||
		strings.Contains(strings.ToLower(device.Label()), word)
}

// ackDevices picks the buzzer, the first by device_id, and the button
// candidates, the ones in a room with a button slot. devices must be sorted
// by device_id.
func ackDevices(devices []models.Device) (*models.Device, []models.Device) {
	var buzzer *models.Device
	for i := range devices {
		if mentions(devices[i], "buzzer") {
			buzzer = &devices[i]
			break
		}
	}
	buttons := common.Filter(devices, func(d models.Device) bool {
		return mentions(d, "button") && slices.Contains(buttonRooms, NormalizeRoom(d.Label()))
	})
	return buzzer, buttons
}
