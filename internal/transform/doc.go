// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package transform implements the text transformations applied to router
// configuration exports: marker line stripping, third octet substitution in
// its three variants, and literal password substitution.
//
// Every function in this package is a pure function of a SourceDocument and
// a Parameters value. Nothing here touches the filesystem; reading sources and
// writing outputs is done by the core package.
package transform
