package rules

import "github.com/penwyp/cydconf/internal/core/constants"

// ESP32 pad numbers that are not bonded out
var missingGPIO = map[int]bool{20: true, 24: true, 28: true, 29: true, 30: true, 31: true}

func isFlashPin(pin int) bool {
	return pin >= 6 && pin <= 11
}

func isGPIO(pin int) bool {
	return pin >= 0 && pin <= constants.MaxGPIO && !missingGPIO[pin]
}

func isInputOnly(pin int) bool {
	return pin >= constants.InputOnlyGPIOMin && pin <= constants.MaxGPIO
}

// outputPinProblem describes why pin cannot drive a signal, or "" when it can
func outputPinProblem(pin int) string {
	switch {
	case !isGPIO(pin):
		return "is not an ESP32 GPIO"
	case isFlashPin(pin):
		return "is reserved for the SPI flash"
	case isInputOnly(pin):
		return "is input-only"
	default:
		return ""
	}
}

// inputPinProblem describes why pin cannot read a signal, or "" when it can
func inputPinProblem(pin int) string {
	switch {
	case !isGPIO(pin):
		return "is not an ESP32 GPIO"
	case isFlashPin(pin):
		return "is reserved for the SPI flash"
	default:
		return ""
	}
}
