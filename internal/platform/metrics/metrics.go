package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64

	reconciled       uint64
	skipped          uint64
	duplicates       uint64
	missingData      uint64
	userNotFound     uint64
	balanceWriteErrs uint64
	flagWriteErrs    uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Reconciled()      { atomic.AddUint64(&c.reconciled, 1) }
func (c *Collector) Skipped()         { atomic.AddUint64(&c.skipped, 1) }
func (c *Collector) Duplicate()       { atomic.AddUint64(&c.duplicates, 1) }
func (c *Collector) MissingData()     { atomic.AddUint64(&c.missingData, 1) }
func (c *Collector) UserNotFound()    { atomic.AddUint64(&c.userNotFound, 1) }
func (c *Collector) BalanceWriteErr() { atomic.AddUint64(&c.balanceWriteErrs, 1) }
func (c *Collector) FlagWriteErr()    { atomic.AddUint64(&c.flagWriteErrs, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":              total,
		"errorsTotal":                atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":              avg,
		"reconciledTotal":            atomic.LoadUint64(&c.reconciled),
		"reconcileSkippedTotal":      atomic.LoadUint64(&c.skipped),
		"reconcileDuplicateTotal":    atomic.LoadUint64(&c.duplicates),
		"reconcileMissingDataTotal":  atomic.LoadUint64(&c.missingData),
		"reconcileUserNotFoundTotal": atomic.LoadUint64(&c.userNotFound),
		"balanceWriteErrorsTotal":    atomic.LoadUint64(&c.balanceWriteErrs),
		"flagWriteErrorsTotal":       atomic.LoadUint64(&c.flagWriteErrs),
	}
}
