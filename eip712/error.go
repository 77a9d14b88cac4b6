/*
 * Copyright 2023 ICON Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package eip712

import "github.com/icon-project/btp2/common/errors"

const (
	ErrorCodeNotFoundType errors.Code = errors.CodeGeneral + iota
	ErrorCodeLengthMismatch
	ErrorCodeMissingSize
	ErrorCodeEncoding
	ErrorCodeStreamExhausted
	ErrorCodeMalformedWire
)

var (
	errNotFoundType = errors.NewBase(ErrorCodeNotFoundType, "NotFoundTypeError")
)

type NotFoundTypeError interface {
	errors.ErrorCoder
	Name() string
}

type notFoundTypeError struct {
	errors.ErrorCoder
	name string
}

func (e *notFoundTypeError) Name() string {
	return e.name
}

func (e *notFoundTypeError) Error() string {
	return "not found struct name:" + e.name
}

func NewNotFoundTypeError(name string) NotFoundTypeError {
	return &notFoundTypeError{
		ErrorCoder: errNotFoundType,
		name:       name,
	}
}
