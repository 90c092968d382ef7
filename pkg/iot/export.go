package iot

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const exportSheet = "snapshots"

type exportColumn struct {
	header string
	value  func(s *models.HomeStateSnapshot) any
}

var exportColumns = []exportColumn{
	{"time", func(s *models.HomeStateSnapshot) any { return common.FormatTimestamp(s.Time) }},
	{"user_id", func(s *models.HomeStateSnapshot) any { return s.UserID.String() }},
	{"entrance_pir_motion", func(s *models.HomeStateSnapshot) any { return s.EntrancePirMotion }},
	{"entrance_rfid_status", func(s *models.HomeStateSnapshot) any { return s.EntranceRfidStatus }},
	{"entrance_reed_is_closed", func(s *models.HomeStateSnapshot) any { return s.EntranceReedIsClosed }},
	{"livingroom_pir_1_motion", func(s *models.HomeStateSnapshot) any { return s.LivingroomPir1Motion }},
	{"livingroom_pir_2_motion", func(s *models.HomeStateSnapshot) any { return s.LivingroomPir2Motion }},
	{"livingroom_sound_db", func(s *models.HomeStateSnapshot) any { return s.LivingroomSoundDb }},
	{"livingroom_mq7_co_ppm", func(s *models.HomeStateSnapshot) any { return s.LivingroomMq7CoPpm }},
	{"livingroom_button_state", func(s *models.HomeStateSnapshot) any { return common.Deref(s.LivingroomButton, "") }},
	{"kitchen_pir_motion", func(s *models.HomeStateSnapshot) any { return s.KitchenPirMotion }},
	{"kitchen_sound_db", func(s *models.HomeStateSnapshot) any { return s.KitchenSoundDb }},
	{"kitchen_mq5_gas_ppm", func(s *models.HomeStateSnapshot) any { return s.KitchenMq5GasPpm }},
	{"kitchen_loadcell_1_kg", func(s *models.HomeStateSnapshot) any { return s.KitchenLoadcell1Kg }},
	{"kitchen_loadcell_2_kg", func(s *models.HomeStateSnapshot) any { return s.KitchenLoadcell2Kg }},
	{"kitchen_button_state", func(s *models.HomeStateSnapshot) any { return common.Deref(s.KitchenButton, "") }},
	{"kitchen_buzzer_is_on", func(s *models.HomeStateSnapshot) any { return s.KitchenBuzzerIsOn }},
	{"bedroom_pir_motion", func(s *models.HomeStateSnapshot) any { return s.BedroomPirMotion }},
	{"bedroom_sound_db", func(s *models.HomeStateSnapshot) any { return s.BedroomSoundDb }},
	{"bedroom_mq7_co_ppm", func(s *models.HomeStateSnapshot) any { return s.BedroomMq7CoPpm }},
	{"bedroom_loadcell_kg", func(s *models.HomeStateSnapshot) any { return s.BedroomLoadcellKg }},
	{"bedroom_button_state", func(s *models.HomeStateSnapshot) any { return common.Deref(s.BedroomButton, "") }},
	{"bathroom_pir_motion", func(s *models.HomeStateSnapshot) any { return s.BathroomPirMotion }},
	{"bathroom_sound_db", func(s *models.HomeStateSnapshot) any { return s.BathroomSoundDb }},
	{"bathroom_temp_celsius", func(s *models.HomeStateSnapshot) any { return s.BathroomTempCelsius }},
	{"bathroom_button_state", func(s *models.HomeStateSnapshot) any { return common.Deref(s.BathroomButton, "") }},
	{"detected_activity", func(s *models.HomeStateSnapshot) any { return s.DetectedActivity }},
	{"alert_level", func(s *models.HomeStateSnapshot) any { return string(s.AlertLevel) }},
	{"alert_reason", func(s *models.HomeStateSnapshot) any { return common.Deref(s.AlertReason, "") }},
}

// ExportHeaders is the header row of the snapshot workbook.
func ExportHeaders() []string {
	return common.Mapper(exportColumns, func(c exportColumn) string { return c.header })
}

// writeSnapshotWorkbook writes rows as a single sheet workbook, header row
// first and frozen.
func writeSnapshotWorkbook(rows []models.HomeStateSnapshot, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := ExportHeaders()
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for idx := range rows {
		values := make([]any, len(exportColumns))
		for col, c := range exportColumns {
			values[col] = c.value(&rows[idx])
		}
		cell, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", idx+2, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
