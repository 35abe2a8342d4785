package mocks

//go:generate mockery --name RecordReader --srcpkg github.com/aevon-lab/fleetwise/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name AggregateReader --srcpkg github.com/aevon-lab/fleetwise/internal/metrics --output ./metrics --outpkg metricsmocks --with-expecter
