// Package io provides JSON import and export for feedback datasets, keyword
// lists, aggregate reports and word-cloud layouts.
//
// # Dataset Format
//
// A dataset is the output of the upstream classifier:
//
//	{
//	  "feedbacks": [
//	    {
//	      "date": "2024-03-15",
//	      "rating": 4,
//	      "device": "iOS",
//	      "category": "UI,Performance",
//	      "sentiment": "正面",
//	      "keywords": ["fast", "clean"]
//	    }
//	  ],
//	  "keywords": [{"word": "fast", "count": 12}]
//	}
//
// The "keywords" array is optional. When it is missing, consumers merge the
// per-record keyword lists instead.
//
// # Import
//
// Use [ImportDataset] to read a dataset from a file path, or [ReadDataset] to
// read from any io.Reader. Both run [feedback.Dataset.Normalize], so a
// successfully imported dataset has a device on every record and only valid
// keywords. Malformed JSON yields an INVALID_FORMAT error; a record that
// fails validation yields an INVALID_INPUT error naming its index.
//
// [ReadKeywords] accepts either a bare keyword array or a full dataset and
// returns the keyword list, which is what the word-cloud commands need.
//
// # Export
//
// [WriteReport] and [WriteLayout] encode an aggregate report or a layout
// result as indented JSON. The Export* variants write to a file.
package io
