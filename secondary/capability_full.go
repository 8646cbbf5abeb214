//go:build !nofullmodel

package secondary

const fullModelCompiled = true
