//go:build linux

package evdev

import "unsafe"

// Event types from input-event-codes.h.
const (
	EvSyn      = 0x00
	EvKey      = 0x01
	EvRel      = 0x02
	EvAbs      = 0x03
	EvMsc      = 0x04
	EvSw       = 0x05
	EvLed      = 0x11
	EvSnd      = 0x12
	EvRep      = 0x14
	EvFF       = 0x15
	EvPwr      = 0x16
	EvFFStatus = 0x17
)

// Button codes.
const (
	BtnMisc = 0x100
	Btn0    = 0x100
	Btn1    = 0x101
	Btn2    = 0x102
	Btn3    = 0x103
	Btn4    = 0x104
	Btn5    = 0x105
	Btn6    = 0x106
	Btn7    = 0x107
	Btn8    = 0x108
	Btn9    = 0x109

	BtnJoystick = 0x120
	BtnTrigger  = 0x120
	BtnThumb    = 0x121
	BtnThumb2   = 0x122
	BtnTop      = 0x123
	BtnTop2     = 0x124
	BtnPinkie   = 0x125
	BtnBase     = 0x126
	BtnBase2    = 0x127
	BtnBase3    = 0x128
	BtnBase4    = 0x129
	BtnBase5    = 0x12a
	BtnBase6    = 0x12b
	BtnDead     = 0x12f

	BtnGamepad = 0x130
	BtnA       = 0x130
	BtnB       = 0x131
	BtnC       = 0x132
	BtnX       = 0x133
	BtnY       = 0x134
	BtnZ       = 0x135
	BtnTL      = 0x136
	BtnTR      = 0x137
	BtnTL2     = 0x138
	BtnTR2     = 0x139
	BtnSelect  = 0x13a
	BtnStart   = 0x13b
	BtnMode    = 0x13c
	BtnThumbL  = 0x13d
	BtnThumbR  = 0x13e

	BtnWheel    = 0x150
	BtnGearDown = 0x150
	BtnGearUp   = 0x151

	BtnDpadUp    = 0x220
	BtnDpadDown  = 0x221
	BtnDpadLeft  = 0x222
	BtnDpadRight = 0x223
)

// Absolute axis codes.
const (
	AbsX        = 0x00
	AbsY        = 0x01
	AbsZ        = 0x02
	AbsRX       = 0x03
	AbsRY       = 0x04
	AbsRZ       = 0x05
	AbsThrottle = 0x06
	AbsRudder   = 0x07
	AbsWheel    = 0x08
	AbsGas      = 0x09
	AbsBrake    = 0x0a
	AbsHat0X    = 0x10
	AbsHat0Y    = 0x11
	AbsHat1X    = 0x12
	AbsHat1Y    = 0x13
	AbsHat2X    = 0x14
	AbsHat2Y    = 0x15
	AbsHat3X    = 0x16
	AbsHat3Y    = 0x17
	AbsPressure = 0x18
)

// Force-feedback effect types and controls.
const (
	FFRumble   = 0x50
	FFPeriodic = 0x51
	FFGain     = 0x60
	FFMax      = 0x7f
)

// Ioctl direction/encoding helpers, following asm-generic/ioctl.h.
const (
	iocWrite = 1
	iocRead  = 2

	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

// Force-feedback ioctl request numbers ('E' block).
var (
	EVIOCSFF      = ioc(iocWrite, 'E', 0x80, unsafe.Sizeof(FFEffect{}))
	EVIOCRMFF     = ioc(iocWrite, 'E', 0x81, unsafe.Sizeof(int32(0)))
	EVIOCGEFFECTS = ioc(iocRead, 'E', 0x84, unsafe.Sizeof(int32(0)))
)
