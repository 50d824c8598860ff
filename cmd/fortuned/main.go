// Command fortuned serves freshly generated text-art fortunes over TCP.
//
// On every accepted connection it runs the configured quote source
// (piped through a text-art formatter when one is installed), frames
// the output as a fixed-shape HTTP response, writes it, and closes the
// connection. Incoming bytes are never parsed.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
