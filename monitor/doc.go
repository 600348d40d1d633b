// Package monitor handles the monitor calls (opcodes 040-047) of a
// single tenjit job, in the manner of ITS.
//
// The only device is the job's console, TTY, reached through sixteen I/O
// channels:
//
//	        .OPEN 1,TTYO    ; skips on success
//	        .VALUE
//	        .IOT 1,CHAR     ; types C(CHAR)
//	        .CLOSE 1,
//	        .VALUE          ; halts
//	TTYO:   .word .UAO,,DEV_TTY
//	CHAR:   .word 'A'
package monitor
