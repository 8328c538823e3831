// Package models holds the typed request and response records exchanged with
// the TikHub API.
//
// Every model decodes its declared fields by JSON name and keeps whatever the
// server sent beyond them in AdditionalProperties. Encoding writes the declared
// fields back in wire form and merges AdditionalProperties in, so a
// decode/encode round trip is lossless even for fields this package does not
// know about yet.
//
// Optional fields use optional.Value: an unset field is omitted from the
// encoded object, a null one is written as null.
package models
