// Command graha explores graha bhedam (tonic shifts) of Carnatic ragas.
package main

import "github.com/papapumpkin/graha/cmd"

func main() {
	cmd.Execute()
}
