package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AlertLevel string

const (
	AlertNormal    AlertLevel = "Normal"
	AlertAttention AlertLevel = "Attention"
	AlertWarning   AlertLevel = "Warning"
	AlertEmergency AlertLevel = "Emergency"
)

var AlertLevels = []string{
	string(AlertNormal), string(AlertAttention), string(AlertWarning), string(AlertEmergency),
}

// Severity orders levels, Normal is 0.
func (l AlertLevel) Severity() int {
	switch l {
	case AlertAttention:
		return 1
	case AlertWarning:
		return 2
	case AlertEmergency:
		return 3
	default:
		return 0
	}
}

// HomeStateSnapshot is the wide digital-twin row. Every slot column carries
// the last observed value for the user as of Time.
type HomeStateSnapshot struct {
	Time   time.Time `gorm:"primaryKey" json:"time"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	EntrancePirMotion    bool   `gorm:"column:entrance_pir_motion" json:"entrance_pir_motion"`
	EntranceRfidStatus   string `gorm:"column:entrance_rfid_status;size:8" json:"entrance_rfid_status"`
	EntranceReedIsClosed bool   `gorm:"column:entrance_reed_is_closed" json:"entrance_reed_is_closed"`

	LivingroomPir1Motion bool    `gorm:"column:livingroom_pir_1_motion" json:"livingroom_pir_1_motion"`
	LivingroomPir2Motion bool    `gorm:"column:livingroom_pir_2_motion" json:"livingroom_pir_2_motion"`
	LivingroomSoundDb    float64 `gorm:"column:livingroom_sound_db" json:"livingroom_sound_db"`
	LivingroomMq7CoPpm   float64 `gorm:"column:livingroom_mq7_co_ppm" json:"livingroom_mq7_co_ppm"`
	LivingroomButton     *string `gorm:"column:livingroom_button_state;size:16" json:"livingroom_button_state"`

	KitchenPirMotion   bool    `gorm:"column:kitchen_pir_motion" json:"kitchen_pir_motion"`
	KitchenSoundDb     float64 `gorm:"column:kitchen_sound_db" json:"kitchen_sound_db"`
	KitchenMq5GasPpm   float64 `gorm:"column:kitchen_mq5_gas_ppm" json:"kitchen_mq5_gas_ppm"`
	KitchenLoadcell1Kg float64 `gorm:"column:kitchen_loadcell_1_kg" json:"kitchen_loadcell_1_kg"`
	KitchenLoadcell2Kg float64 `gorm:"column:kitchen_loadcell_2_kg" json:"kitchen_loadcell_2_kg"`
	KitchenButton      *string `gorm:"column:kitchen_button_state;size:16" json:"kitchen_button_state"`
	KitchenBuzzerIsOn  bool    `gorm:"column:kitchen_buzzer_is_on" json:"kitchen_buzzer_is_on"`

	BedroomPirMotion  bool    `gorm:"column:bedroom_pir_motion" json:"bedroom_pir_motion"`
	BedroomSoundDb    float64 `gorm:"column:bedroom_sound_db" json:"bedroom_sound_db"`
	BedroomMq7CoPpm   float64 `gorm:"column:bedroom_mq7_co_ppm" json:"bedroom_mq7_co_ppm"`
	BedroomLoadcellKg float64 `gorm:"column:bedroom_loadcell_kg" json:"bedroom_loadcell_kg"`
	BedroomButton     *string `gorm:"column:bedroom_button_state;size:16" json:"bedroom_button_state"`

	BathroomPirMotion   bool    `gorm:"column:bathroom_pir_motion" json:"bathroom_pir_motion"`
	BathroomSoundDb     float64 `gorm:"column:bathroom_sound_db" json:"bathroom_sound_db"`
	BathroomTempCelsius float64 `gorm:"column:bathroom_temp_celsius" json:"bathroom_temp_celsius"`
	BathroomButton      *string `gorm:"column:bathroom_button_state;size:16" json:"bathroom_button_state"`

	DetectedActivity string         `gorm:"column:detected_activity;size:32" json:"detected_activity"`
	AlertLevel       AlertLevel     `gorm:"column:alert_level;size:16;index;check:alert_level IN ('Normal','Attention','Warning','Emergency')" json:"alert_level"`
	AlertReason      *string        `gorm:"column:alert_reason" json:"alert_reason"`
	ActionLog        datatypes.JSON `gorm:"column:action_log" json:"action_log"`
	ExtraData        datatypes.JSON `gorm:"column:extra_data" json:"extra_data"`
}

func (HomeStateSnapshot) TableName() string { return "home_state_snapshots" }

type SnapshotPage struct {
	Items []HomeStateSnapshot `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

// ActionLogEntry is one element of HomeStateSnapshot.ActionLog.
type ActionLogEntry struct {
	ActionTaken    string `json:"action_taken"`
	ResultTime     string `json:"result_time"`
	AcknowledgedBy string `json:"acknowledged_by,omitempty"`
	Note           string `json:"note,omitempty"`
}

const ActionUserAcknowledged = "USER_ACKNOWLEDGED"

// EnvironmentalAlert is a derived reading above an environmental limit.
type EnvironmentalAlert struct {
	Time      time.Time `json:"time"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
}
