// Copyright 2025 Forkful Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package lexical

import "errors"

var (
	// ErrIndexNotFound is returned when no index exists at the given path.
	// This is a normal condition before the first ingestion run; callers
	// treat it as an empty contribution, not a failure.
	ErrIndexNotFound = errors.New("lexical index not found")

	// ErrEmptyDocumentID is returned when a document carries no external identifier.
	ErrEmptyDocumentID = errors.New("document id must not be empty")
)
