// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SerializedEncryptedValue is the on-disk form of one encrypted entry.
type SerializedEncryptedValue struct {
	CT      string `json:"ct"`
	IV      string `json:"iv"`
	Version int    `json:"v"`
}

// EntryMeta is the write-timestamp record used by storage cleanup.
type EntryMeta struct {
	// WrittenAt is unix milliseconds.
	WrittenAt int64 `json:"ts"`
}

// StorageStats approximates how much of the durable store is in use.
type StorageStats struct {
	UsedBytes   int64   `json:"used_bytes"`
	LimitBytes  int64   `json:"limit_bytes"`
	EntryCount  int     `json:"entry_count"`
	PercentUsed float64 `json:"percent_used"`
}
