package workload

import "encoding/json"

// ResourceUsage is the per-request measurement the simulator attaches to
// each replayed Entry.
type ResourceUsage struct {
	ServerComputeNS    int64  `json:"server_compute_ns"`
	UserComputeNS      int64  `json:"user_compute_ns"`
	BandwidthBytes     uint64 `json:"bandwidth_bytes"`
	ServerStorageBytes uint64 `json:"server_storage_bytes"`
}

// Record is one output line: the original entry plus its measured result.
type Record struct {
	Entry
	Result ResourceUsage `json:"result"`
}

// MarshalJSON merges the embedded Entry's own tagged-union encoding with
// the result field; Entry's promoted MarshalJSON method would otherwise
// shadow Record's and silently drop Result.
func (r Record) MarshalJSON() ([]byte, error) {
	entryJSON, err := r.Entry.MarshalJSON()
	if err != nil {
		return nil, err
	}
	resultJSON, err := json.Marshal(r.Result)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(entryJSON, &merged); err != nil {
		return nil, err
	}
	merged["result"] = resultJSON
	return json.Marshal(merged)
}
