package render

const monitorTemplate = `#pragma once
// =============================================================================
//  {{comment .Name}} - config.h
//  Generated by cydconf. Edit the project file and re-render.
// =============================================================================

// -- WiFi ---------------------------------------------------------------------
#define WIFI_SSID       {{q .M.WiFi.SSID}}
#define WIFI_PASSWORD   {{q .M.WiFi.Password}}

// -- SMS gateway --------------------------------------------------------------
#define TWILIO_ACCOUNT_SID  {{q .M.SMS.AccountSID}}
#define TWILIO_AUTH_TOKEN   {{q .M.SMS.AuthToken}}
#define TWILIO_FROM_NUMBER  {{q .M.SMS.FromNumber}}

// -- Alert recipients (E.164) -------------------------------------------------
static const char* ALERT_NUMBERS[] = {
{{- range .M.Recipients}}
    {{q .}},
{{- end}}
};
static const int NUM_RECIPIENTS = sizeof(ALERT_NUMBERS) / sizeof(ALERT_NUMBERS[0]);

// -- Location -----------------------------------------------------------------
#define LOCATION_NAME   {{q .M.Location}}

// -- Temperature thresholds (F) -----------------------------------------------
#define TEMP_ALERT_F    {{cfloat .M.Thresholds.AlertF}}   // Alert when temp drops below this
#define TEMP_CLEAR_F    {{cfloat .M.Thresholds.ClearF}}   // All-clear when temp rises above this

// -- Alert timing -------------------------------------------------------------
#define READ_INTERVAL_MS  {{ul .M.Timing.ReadIntervalMS}}
#define ALERT_REPEAT_MS   {{ul .M.Timing.AlertRepeatMS}}

// -- RF alarm trigger (code 0 disables it) ------------------------------------
#define RF_TX_PIN           {{.M.RF.TxPin}}
#define RF_ALARM_CODE       {{ul .M.RF.Code}}
#define RF_ALARM_BITLEN     {{.M.RF.BitLength}}
#define RF_ALARM_PROTOCOL   {{.M.RF.Protocol}}
#define RF_ALARM_PULSE_US   {{.M.RF.PulseUS}}
`

const displayTemplate = `// =====================================================
//  User_Setup.h for {{comment .D.Info}}
//  Generated by cydconf. Edit the project file and re-render.
// =====================================================

#define USER_SETUP_INFO {{q .D.Info}}

// ---- Display Driver ----
#define {{upper .D.Driver}}_DRIVER

// ---- Display Size ----
#define TFT_WIDTH  {{.D.Width}}
#define TFT_HEIGHT {{.D.Height}}

// ---- ESP32 Display Pins ----
{{- if .D.HSPI}}
#define USE_HSPI_PORT
{{- end}}
#define TFT_MOSI {{.D.Pins.MOSI}}
#define TFT_MISO {{.D.Pins.MISO}}
#define TFT_SCLK {{.D.Pins.SCLK}}
#define TFT_CS   {{.D.Pins.CS}}
#define TFT_DC   {{.D.Pins.DC}}
#define TFT_RST  {{.D.Pins.RST}}
#define TFT_BL   {{.D.Pins.BL}}

// ---- Fonts ----
{{- range .D.Fonts}}
#define LOAD_{{upper .}}
{{- end}}
{{- if .D.SmoothFont}}
#define SMOOTH_FONT
{{- end}}

// ---- SPI Frequency ----
#define SPI_FREQUENCY       {{.D.SPIFrequency}}
#define SPI_READ_FREQUENCY  {{.D.SPIReadFrequency}}
`

const uiTemplate = `// =====================================================
//  lv_conf.h
//  Generated by cydconf. Edit the project file and re-render.
// =====================================================
#if 1
#ifndef LV_CONF_H
#define LV_CONF_H

#include <stdint.h>

// Color
#define LV_COLOR_DEPTH {{.U.ColorDepth}}
#define LV_COLOR_16_SWAP {{b .U.Color16Swap}}

// Memory
#define LV_MEM_CUSTOM {{b .U.MemCustom}}
#define LV_MEM_SIZE {{memsize .U.MemSize}}

// Display
#define LV_DPI_DEF {{.U.DPI}}
#define LV_USE_GPU_ESP32 {{b .U.GPU}}
#define LV_USE_LOG {{b .U.Log}}

// Fonts
{{- range .Fonts}}
#define LV_FONT_MONTSERRAT_{{.Size}} {{b .On}}
{{- end}}
#define LV_FONT_DEFAULT &lv_font_montserrat_{{.U.DefaultFontSize}}

// Themes
#define LV_USE_THEME_DEFAULT {{b .U.Theme.Enabled}}
#define LV_THEME_DEFAULT_DARK {{b .U.Theme.Dark}}
#define LV_THEME_DEFAULT_GROW {{b .U.Theme.Grow}}
#define LV_THEME_DEFAULT_TRANSITION_TIME {{.U.Theme.TransitionMS}}

// Widgets
{{- range .Widgets}}
#define LV_USE_{{upper .Name}} {{b .On}}
{{- end}}

// Layouts
#define LV_USE_FLEX {{b .U.Flex}}
#define LV_USE_GRID {{b .U.Grid}}

// Other
#define LV_USE_ANIMATION {{b .U.Animation}}
#define LV_USE_SHADOW {{b .U.Shadow}}
#define LV_USE_GROUP {{b .U.Group}}

// Tick
#define LV_TICK_CUSTOM {{b .U.Tick.Custom}}
{{- if .U.Tick.Custom}}
#define LV_TICK_CUSTOM_INCLUDE {{q .U.Tick.Include}}
#define LV_TICK_CUSTOM_SYS_TIME_EXPR {{.U.Tick.SysTimeExpr}}
{{- end}}

#endif /* LV_CONF_H */
#endif
`
