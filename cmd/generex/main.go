// Command generex prints strings matched by a regular expression.
//
// Usage:
//
//	generex count '[0-3]([a-c]|[e-g]{1,2})'
//	generex at '\d{3,4}' 1 500 11000
//	generex random -n 5 --seed 42 '[A-Z]{1,10}'
//	generex list --limit 20 'a+'
//	echo '\w{1,2}' | generex batch
package main

func main() {
	Execute()
}
