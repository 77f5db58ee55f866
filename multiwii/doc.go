// Package multiwii is the typed facade over the MSP protocol engine. It
// exposes one named operation per command, converts raw payload records
// into structured values, and applies unit scaling (decidegrees to
// degrees, decivolts to volts, 1e-7 degree GPS coordinates) at this
// boundary only.
package multiwii
