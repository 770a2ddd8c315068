package model

import (
	"encoding/json"
	"sort"
)

// Document is the whole tracker state: date key (YYYY-MM-DD) to the raw
// JSON of its DayRecord. Records stay raw so malformed ones can be told
// apart from missing ones and repaired in place.
type Document map[string]json.RawMessage

// DayStatus classifies the record stored under a date.
type DayStatus int

const (
	// DayMissing means no record exists for the date.
	DayMissing DayStatus = iota
	// DayMalformed means the record is not a JSON object.
	DayMalformed
	// DayNoTasks means the record is an object without a tasks array.
	DayNoTasks
	// DayOK means the record decoded cleanly.
	DayOK
)

func (s DayStatus) String() string {
	switch s {
	case DayMissing:
		return "missing"
	case DayMalformed:
		return "malformed"
	case DayNoTasks:
		return "no-tasks"
	case DayOK:
		return "ok"
	}
	return "unknown"
}

// Day decodes the record stored under date. The returned record is only
// meaningful when the status is DayOK.
func (d Document) Day(date string) (DayRecord, DayStatus) {
	raw, ok := d[date]
	if !ok {
		return DayRecord{}, DayMissing
	}
	fields, ok := objectFields(raw)
	if !ok {
		return DayRecord{}, DayMalformed
	}
	tasks, ok := fields["tasks"]
	if !ok || !isArray(tasks) {
		return DayRecord{}, DayNoTasks
	}
	return DayRecord{Tasks: NormalizeTasks(tasks)}, DayOK
}

// SetDay replaces the record stored under date.
func (d Document) SetDay(date string, day DayRecord) {
	if day.Tasks == nil {
		day.Tasks = []Task{}
	}
	// Marshalling a DayRecord cannot fail.
	data, _ := json.Marshal(day)
	d[date] = data
}

// RepairTasks replaces a missing or non-array tasks field with the default
// tasks and keeps any other fields of the record. A record that is not an
// object is replaced by DefaultDay.
func (d Document) RepairTasks(date string) DayRecord {
	def := DefaultDay()
	fields, ok := objectFields(d[date])
	if !ok {
		d.SetDay(date, def)
		return def
	}
	tasks, _ := json.Marshal(def.Tasks)
	fields["tasks"] = tasks
	data, _ := json.Marshal(fields)
	d[date] = data
	return def
}

// Dates returns all date keys in ascending order.
func (d Document) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Clone returns a copy that shares no map or byte storage with d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if !isObject(raw) {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}
