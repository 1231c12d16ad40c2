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

package namespace

import "github.com/robotcode-go/robotls/kwdoc"

// BuiltinLibraryName is Robot Framework's always-available standard
// library.
const BuiltinLibraryName = "BuiltIn"

// BuiltinImporter resolves BuiltIn and a handful of other standard
// libraries (Collections, String, OperatingSystem) without touching any
// Python source; it stands in for "the library importer" for libraries
// this core ships canned documentation for. Anything else is delegated
// to Fallback, if set.
type BuiltinImporter struct {
	Fallback LibraryImporter
}

// ImportLibrary implements LibraryImporter.
func (b *BuiltinImporter) ImportLibrary(name string, libArgs []string, alias string) (*LibraryEntry, *kwdoc.ImportError) {
	if kws, ok := standardLibraries[name]; ok {
		return &LibraryEntry{ImportName: name, Args: libArgs, Alias: alias, Keywords: kws()}, nil
	}
	if b.Fallback != nil {
		return b.Fallback.ImportLibrary(name, libArgs, alias)
	}
	return nil, &kwdoc.ImportError{Message: "Unknown library '" + name + "'."}
}

var standardLibraries = map[string]func() []*kwdoc.KeywordDoc{
	"BuiltIn":         builtinKeywords,
	"Collections":     collectionsKeywords,
	"String":          stringKeywords,
	"OperatingSystem": operatingSystemKeywords,
}

func kw(name string, positional ...string) *kwdoc.KeywordDoc {
	params := make([]kwdoc.Param, 0, len(positional))
	for _, p := range positional {
		params = append(params, kwdoc.Param{Name: p})
	}
	return &kwdoc.KeywordDoc{
		Name:      name,
		LibName:   BuiltinLibraryName,
		LineNo:    -1,
		Arguments: &kwdoc.ArgSpec{Positional: params},
	}
}

func builtinKeywords() []*kwdoc.KeywordDoc {
	runKeyword := kw("Run Keyword", "name")
	runKeyword.LibName = BuiltinLibraryName
	runKeyword.RunKeywordFamily = kwdoc.RunKeyword
	runKeyword.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "name"}},
		VarPositional: "args",
	}

	runKeywords := kw("Run Keywords")
	runKeywords.RunKeywordFamily = kwdoc.RunKeywords
	runKeywords.Arguments = &kwdoc.ArgSpec{VarPositional: "keywords"}

	runKeywordIf := kw("Run Keyword If", "condition", "name")
	runKeywordIf.RunKeywordFamily = kwdoc.RunKeywordIf
	runKeywordIf.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "condition"}, {Name: "name"}},
		VarPositional: "args",
	}

	runKeywordUnless := kw("Run Keyword Unless", "condition", "name")
	runKeywordUnless.RunKeywordFamily = kwdoc.RunKeywordIf
	runKeywordUnless.Arguments = runKeywordIf.Arguments

	runKeywordAndIgnoreError := kw("Run Keyword And Ignore Error", "name")
	runKeywordAndIgnoreError.RunKeywordFamily = kwdoc.RunKeyword
	runKeywordAndIgnoreError.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "name"}},
		VarPositional: "args",
	}

	runKeywordAndReturnIf := kw("Run Keyword And Return If", "condition", "name")
	runKeywordAndReturnIf.RunKeywordFamily = kwdoc.RunKeywordWithCondition
	runKeywordAndReturnIf.CondArgCount = 1
	runKeywordAndReturnIf.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "condition"}, {Name: "name"}},
		VarPositional: "args",
	}

	runKeywordWithCondition := kw("Run Keyword And Return If Not Timeouted", "condition", "name")
	runKeywordWithCondition.RunKeywordFamily = kwdoc.RunKeywordWithCondition
	runKeywordWithCondition.CondArgCount = 1
	runKeywordWithCondition.Arguments = runKeywordAndReturnIf.Arguments

	comment := kw("Comment")
	comment.Arguments = &kwdoc.ArgSpec{VarPositional: "messages"}

	log := kw("Log", "message")
	log.Arguments = &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{{Name: "message"}, {Name: "level", HasDefault: true}},
	}

	shouldBeEqual := kw("Should Be Equal", "first", "second")
	shouldBeEqual.Arguments = &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{{Name: "first"}, {Name: "second"}},
		VarNamed:   "configuration",
	}

	shouldBeTrue := kw("Should Be True", "condition")

	noOperation := kw("No Operation")

	fail := kw("Fail")
	fail.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "msg", HasDefault: true}},
		VarPositional: "tags",
	}

	setVariable := kw("Set Variable", "value")
	setVariable.Arguments = &kwdoc.ArgSpec{VarPositional: "values"}

	evaluate := kw("Evaluate", "expression")
	evaluate.Arguments = &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{{Name: "expression"}, {Name: "modules", HasDefault: true}, {Name: "namespace", HasDefault: true}},
	}

	deprecatedKeyword := kw("Set Global Variable", "name")
	deprecatedKeyword.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "name"}},
		VarPositional: "values",
	}
	deprecatedKeyword.IsDeprecated = true
	deprecatedKeyword.DeprecatedMessage = "Use 'VAR' syntax instead."

	return []*kwdoc.KeywordDoc{
		runKeyword, runKeywords, runKeywordIf, runKeywordUnless,
		runKeywordAndIgnoreError, runKeywordAndReturnIf, runKeywordWithCondition,
		comment, log, shouldBeEqual, shouldBeTrue, noOperation, fail,
		setVariable, evaluate, deprecatedKeyword,
	}
}

func collectionsKeywords() []*kwdoc.KeywordDoc {
	appendToList := kw("Append To List", "list_", "value")
	appendToList.LibName = "Collections"
	appendToList.Arguments = &kwdoc.ArgSpec{
		Positional:    []kwdoc.Param{{Name: "list_"}},
		VarPositional: "values",
	}
	getFromList := kw("Get From List", "list_", "index")
	getFromList.LibName = "Collections"
	listShouldContainValue := kw("List Should Contain Value", "list_", "value")
	listShouldContainValue.LibName = "Collections"
	listShouldContainValue.Arguments = &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{{Name: "list_"}, {Name: "value"}, {Name: "msg", HasDefault: true}},
	}
	return []*kwdoc.KeywordDoc{appendToList, getFromList, listShouldContainValue}
}

func stringKeywords() []*kwdoc.KeywordDoc {
	convertToUpper := kw("Convert To Uppercase", "string")
	convertToUpper.LibName = "String"
	shouldStartWith := kw("Should Start With", "str1", "str2")
	shouldStartWith.LibName = "String"
	shouldStartWith.Arguments = &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{{Name: "str1"}, {Name: "str2"}, {Name: "msg", HasDefault: true}, {Name: "ignore_case", HasDefault: true}},
	}
	return []*kwdoc.KeywordDoc{convertToUpper, shouldStartWith}
}

func operatingSystemKeywords() []*kwdoc.KeywordDoc {
	removedKeyword := kw("Remove File", "path")
	removedKeyword.LibName = "OperatingSystem"
	fileShouldExist := kw("File Should Exist", "path")
	fileShouldExist.LibName = "OperatingSystem"
	fileShouldExist.Arguments = &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{{Name: "path"}, {Name: "msg", HasDefault: true}},
	}
	return []*kwdoc.KeywordDoc{removedKeyword, fileShouldExist}
}
