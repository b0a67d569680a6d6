// Package testutils provides HTTP helpers shared by handler and server tests.
package testutils
