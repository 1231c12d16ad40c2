// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lsp defines the wire records the core hands to an LSP transport:
// Diagnostic, Location, LocationLink, and the position/range shapes they
// nest. None of these types know how to send themselves anywhere; they are
// plain, transport-agnostic structs with JSON tags matching LSP 3.17.
package lsp

import "github.com/robotcode-go/robotls/token"

// DiagnosticSource is the fixed `source` field of every Diagnostic this
// core produces.
const DiagnosticSource = "robotcode"

// Severity is the LSP DiagnosticSeverity enum.
type Severity int

const (
	Error Severity = iota + 1
	Warning
	Information
	Hint
)

// Tag is the LSP DiagnosticTag enum.
type Tag int

const (
	Unnecessary Tag = 1
	Deprecated  Tag = 2
)

// Position is the wire form of token.Position.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is the wire form of token.Range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// FromRange converts a token.Range to its wire Range.
func FromRange(r token.Range) Range {
	return Range{
		Start: Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   Position{Line: r.End.Line, Character: r.End.Character},
	}
}

// Location is a range within a single document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// LocationLink points from a selection range in the request document to a
// target range in another (possibly the same) file.
type LocationLink struct {
	OriginSelectionRange *Range `json:"originSelectionRange,omitempty"`
	TargetURI            string `json:"targetUri"`
	TargetRange          Range  `json:"targetRange"`
	TargetSelectionRange Range  `json:"targetSelectionRange"`
}

// RelatedInformation attaches extra context to a Diagnostic, e.g. pointing
// at the import statement that failed.
type RelatedInformation struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// CodeDescription links a Diagnostic's code to further documentation.
type CodeDescription struct {
	Href string `json:"href"`
}

// Diagnostic is bit-exact with LSP 3.17's Diagnostic, modulo the wire's
// loose `code: string | int`, modeled here as a plain string since this
// core never emits integer codes.
type Diagnostic struct {
	Range              Range                `json:"range"`
	Message            string               `json:"message"`
	Severity           Severity             `json:"severity"`
	Code               string               `json:"code,omitempty"`
	CodeDescription    *CodeDescription     `json:"codeDescription,omitempty"`
	Source             string               `json:"source"`
	Tags               []Tag                `json:"tags,omitempty"`
	RelatedInformation []RelatedInformation `json:"relatedInformation,omitempty"`
	Data               interface{}          `json:"data,omitempty"`
}

// New builds a Diagnostic with Source pre-filled.
func New(r token.Range, message string, severity Severity, code string) Diagnostic {
	return Diagnostic{
		Range:    FromRange(r),
		Message:  message,
		Severity: severity,
		Code:     code,
		Source:   DiagnosticSource,
	}
}
