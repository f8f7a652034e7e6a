// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

// ducksCanonical is
//
//	{721: {"data": {h'ab': {h'cd': {"name": "Ducks", "image": "ipfs://abc"}}}, "version": 2}}
//
// in minimal-width form.
const ducksCanonical = `
a1                              # map(1)
  1902d1                        # 721
  a2                            # map(2)
    64 64617461                 # "data"
    a1                          # map(1)
      41 ab                     # h'ab'
      a1                        # map(1)
        41 cd                   # h'cd'
        a2                      # map(2)
          64 6e616d65           # "name"
          65 4475636b73         # "Ducks"
          65 696d616765         # "image"
          6a 697066733a2f2f616263 # "ipfs://abc"
    67 76657273696f6e           # "version"
    02
`

// ducksNonCanonical holds the same asset plus a mediaType, framed with
// every non-canonical choice the decoder has to remember: oversized
// widths, indefinite maps and arrays, chunked strings and reordered
// fields.
const ducksNonCanonical = `
b90001                          # map(1), 2-byte length
  1a000002d1                    # 721, 4-byte argument
  bf                            # map(*)
    67 76657273696f6e           # "version"
    1802                        # 2, 1-byte argument
    7804 64617461               # "data", 1-byte length
    a1                          # map(1)
      5801 ab                   # h'ab', 1-byte length
      bf                        # map(*)
        5f 41cd 40 ff           # (_ h'cd', h'')
        a3                      # map(3)
          65 696d616765         # "image"
          9f                    # array(*)
            65 697066733a       # "ipfs:"
            65 2f2f616263       # "//abc"
          ff
          64 6e616d65           # "name"
          7f 63447563 626b73 ff # (_ "Duc", "ks")
          69 6d6564696154797065 # "mediaType"
          69 696d6167652f706e67 # "image/png"
      ff
  ff
`

// ducksNonCanonicalNormalized is the canonical encoding of
// ducksNonCanonical.
const ducksNonCanonicalNormalized = `
a1 1902d1
  a2
    64 64617461
    a1
      41 ab
      a1
        41 cd
        a3
          64 6e616d65             65 4475636b73
          65 696d616765           82 65697066733a 652f2f616263
          69 6d6564696154797065   69 696d6167652f706e67
    67 76657273696f6e 02
`

// fileDetailsHex is {"src": "ipfs://x", "name": "a.png", "mediaType": "image/png"}.
const fileDetailsHex = `
a3
  63 737263                   68 697066733a2f2f78
  64 6e616d65                 65 612e706e67
  69 6d6564696154797065       69 696d6167652f706e67
`

// filesFramed is a Ducks asset with every optional field, framed the
// way a permissive minting tool might: oversized container headers,
// 8-byte string lengths, reordered FileDetails keys, an empty chunked
// string and an indefinite description list of chunked strings.
const filesFramed = `
a1 1902d1
  a2
    64 64617461
    a1 41ab
      a1 41cd
        b90005                                  # map(5), 2-byte length
          65 66696c6573                         # "files"
          9a00000002                            # array(2), 4-byte length
            b90003                              # map(3), 2-byte length
              69 6d6564696154797065             # "mediaType"
              7b0000000000000009 696d6167652f706e67  # "image/png", 8-byte length
              63 737263                         # "src"
              9f                                # array(*)
                7f ff                           # (_ )
                68 697066733a2f2f78             # "ipfs://x"
              ff
              64 6e616d65   61 61               # "name": "a"
            a3
              7b0000000000000004 6e616d65       # "name", 8-byte length
              61 62                             # "b"
              69 6d6564696154797065             # "mediaType"
              6a 746578742f706c61696e           # "text/plain"
              63 737263                         # "src"
              68 697066733a2f2f79               # "ipfs://y"
          6b 6465736372697074696f6e             # "description"
          9f                                    # array(*)
            7f 62 6f6e 62 6531 ff               # (_ "on", "e1")
            63 74776f                           # "two"
          ff
          64 6e616d65   65 4475636b73           # "name": "Ducks"
          65 696d616765 6a 697066733a2f2f616263 # "image": "ipfs://abc"
          69 6d6564696154797065                 # "mediaType"
          69 696d6167652f706e67                 # "image/png"
    67 76657273696f6e 02
`
