// Command advicedice shows a random piece of advice from the Advice Slip API.
package main

import "github.com/diogo/advicedice/internal/commands"

func main() {
	commands.Execute()
}
