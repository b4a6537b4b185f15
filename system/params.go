package system

import "github.com/sarchlab/simtopo/topology"

func l1CacheParams(role topology.CacheRole, size string) topology.CacheParams {
	return topology.CacheParams{
		Role:            role,
		Level:           1,
		Size:            size,
		Assoc:           2,
		TagLatency:      2,
		DataLatency:     2,
		ResponseLatency: 2,
		MSHRs:           4,
		TargetsPerMSHR:  20,
	}
}

func l2CacheParams(size string) topology.CacheParams {
	return topology.CacheParams{
		Role:            topology.CacheUnified,
		Level:           2,
		Size:            size,
		Assoc:           8,
		TagLatency:      20,
		DataLatency:     20,
		ResponseLatency: 20,
		MSHRs:           20,
		TargetsPerMSHR:  12,
	}
}

func l2BusParams() topology.BusParams {
	return topology.BusParams{
		Role:            topology.BusL2,
		Width:           32,
		FrontendLatency: 1,
		ForwardLatency:  0,
		ResponseLatency: 1,
	}
}

func systemBusParams() topology.BusParams {
	return topology.BusParams{
		Role:            topology.BusSystem,
		Width:           16,
		FrontendLatency: 3,
		ForwardLatency:  4,
		ResponseLatency: 2,
	}
}
