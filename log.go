package main

import "log"

var debugEnabled bool

// SetDebugMode enables or disables verbose logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("  "+format, args...)
	}
}
