package client

import "sort"

// maxRecentRTTs is the number of round trips averaged into the latency.
const maxRecentRTTs = 10

// removeOutlierRTTs drops round trips that are more than twice the median
// and over 20ms.
func removeOutlierRTTs(recentRTTs []int64) []int64 {
	result := make([]int64, 0, len(recentRTTs))
	median := medianRTT(recentRTTs)
	for _, rtt := range recentRTTs {
		if rtt > 2*median && rtt > 20 {
			continue
		}
		result = append(result, rtt)
	}
	return result
}

func medianRTT(recentRTTs []int64) int64 {
	if len(recentRTTs) == 0 {
		return 0
	}
	sorted := make([]int64, len(recentRTTs))
	copy(sorted, recentRTTs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}

func averageRTT(recentRTTs []int64) float64 {
	sample := removeOutlierRTTs(recentRTTs)
	if len(sample) == 0 {
		return 0
	}
	sum := 0.0
	for _, rtt := range sample {
		sum += float64(rtt)
	}
	return sum / float64(len(sample))
}
