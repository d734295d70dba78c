// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compress wraps readers and writers with zstd, gzip or deflate
// compression.
//
// Update payloads are published compressed and named after their encoding,
// for example "dmflags-1.2.0.zst". ForFilename maps such a name to its
// encoding and the installed file name:
//
//	enc, name := compress.ForFilename("dmflags-1.2.0.zst")
//	// enc == "zstd", name == "dmflags-1.2.0"
//	r, err := compress.NewReader(f, enc)
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//
// Unknown encodings, and the empty encoding, pass data through unchanged.
package compress
