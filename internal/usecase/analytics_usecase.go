package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"farmmall/internal/domain/model"
	repo "farmmall/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	trendBuckets     = 9
	trendBucketHours = 3
	hotProductLimit  = 10
)

// 売上集計（読み取りのみ）
type AnalyticsUsecase struct {
	analytics repo.AnalyticsRepository
	users     repo.UserRepository
	now       func() time.Time
}

func NewAnalyticsUsecase(analytics repo.AnalyticsRepository, users repo.UserRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{analytics: analytics, users: users, now: time.Now}
}

type StatisticsOutput struct {
	TotalSales  float64 `json:"totalSales"`
	TodaySales  float64 `json:"todaySales"`
	TotalOrders int64   `json:"totalOrders"`
	TodayOrders int64   `json:"todayOrders"`
	TotalUsers  int64   `json:"totalUsers"`
	TodayUsers  int64   `json:"todayUsers"`
}

type TrendPoint struct {
	Time   string  `json:"time"`
	Sales  float64 `json:"sales"`
	Orders int64   `json:"orders"`
}

type HotProductOutput struct {
	Key    string `json:"key"`
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Sales  int64  `json:"sales"`
	Amount string `json:"amount"`
}

// ローカル時刻の0時
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (u *AnalyticsUsecase) Statistics(ctx context.Context) (StatisticsOutput, error) {
	today := startOfDay(u.now())
	statuses := model.QualifyingStatuses

	totalSales, err := u.analytics.SumOrderAmount(ctx, statuses, nil)
	if err != nil {
		return StatisticsOutput{}, dbError(err)
	}
	todaySales, err := u.analytics.SumOrderAmount(ctx, statuses, &today)
	if err != nil {
		return StatisticsOutput{}, dbError(err)
	}
	totalOrders, err := u.analytics.CountOrders(ctx, statuses, nil)
	if err != nil {
		return StatisticsOutput{}, dbError(err)
	}
	todayOrders, err := u.analytics.CountOrders(ctx, statuses, &today)
	if err != nil {
		return StatisticsOutput{}, dbError(err)
	}
	totalUsers, err := u.users.Count(ctx, nil)
	if err != nil {
		return StatisticsOutput{}, dbError(err)
	}
	todayUsers, err := u.users.Count(ctx, &today)
	if err != nil {
		return StatisticsOutput{}, dbError(err)
	}

	return StatisticsOutput{
		TotalSales:  totalSales.InexactFloat64(),
		TodaySales:  todaySales.InexactFloat64(),
		TotalOrders: totalOrders,
		TodayOrders: todayOrders,
		TotalUsers:  totalUsers,
		TodayUsers:  todayUsers,
	}, nil
}

// 今日の注文を3時間ごとに集計（00:00〜24:00の9区間）
func (u *AnalyticsUsecase) SalesTrend(ctx context.Context) ([]TrendPoint, error) {
	now := u.now()
	today := startOfDay(now)

	orders, err := u.analytics.ListOrdersSince(ctx, model.QualifyingStatuses, today)
	if err != nil {
		return nil, dbError(err)
	}

	points := make([]TrendPoint, trendBuckets)
	sums := make([]decimal.Decimal, trendBuckets)
	for i := range points {
		points[i].Time = fmt.Sprintf("%02d:00", i*trendBucketHours)
	}
	for _, o := range orders {
		idx := o.CreateTime.In(now.Location()).Hour() / trendBucketHours
		if idx < 0 || idx >= trendBuckets {
			continue
		}
		sums[idx] = sums[idx].Add(o.TotalAmount)
		points[idx].Orders++
	}
	for i := range points {
		points[i].Sales = sums[i].Round(2).InexactFloat64()
	}
	return points, nil
}

func (u *AnalyticsUsecase) HotProducts(ctx context.Context) ([]HotProductOutput, error) {
	rows, err := u.analytics.HotProducts(ctx, model.QualifyingStatuses, hotProductLimit)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]HotProductOutput, 0, len(rows))
	for i, r := range rows {
		out = append(out, HotProductOutput{
			Key:    strconv.Itoa(i + 1),
			Index:  i + 1,
			Name:   r.Name,
			Sales:  r.TotalSales,
			Amount: "￥" + r.TotalAmount.StringFixed(2),
		})
	}
	return out, nil
}
