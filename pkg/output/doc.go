// Package output writes command results in the format the user asked for:
// styled or plain text for people, JSON or YAML for scripts.
package output
