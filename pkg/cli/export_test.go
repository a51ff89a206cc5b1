package cli

var PrintPolicy = printPolicy
