package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/yieldfood-api/pkg/config"
)

// NewPool crea el pool de conexiones de stock/recetas/logs. Registra el codec NUMERIC ->
// shopspring/decimal en cada conexión y verifica la conexión con Ping.
// Con cfg.ForceIPv4 el dial resuelve registros A (con cfg.FallbackDNS si el DNS del sistema no los da).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	maxConns, minConns := poolSize(cfg.MaxConns, cfg.MinConns)
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	if cfg.ForceIPv4 {
		d := &ipv4Dialer{fallbackDNS: cfg.FallbackDNS}
		poolConfig.ConnConfig.DialFunc = d.DialContext
	}

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolSize aplica los valores por defecto y mantiene min <= max.
func poolSize(maxConns, minConns int) (int32, int32) {
	if maxConns <= 0 {
		maxConns = 25
	}
	if minConns < 0 {
		minConns = 0
	}
	if minConns > maxConns {
		minConns = maxConns
	}
	return int32(maxConns), int32(minConns)
}

var errNoIPv4 = errors.New("sin dirección IPv4")

// ipv4Dialer conecta siempre por tcp4.
type ipv4Dialer struct {
	fallbackDNS string
	dialer      net.Dialer
}

func (d *ipv4Dialer) DialContext(ctx context.Context, _, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := d.lookup(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolver %s: %w", host, err)
	}
	return d.dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

func (d *ipv4Dialer) lookup(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", errNoIPv4
		}
		return host, nil
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if ip, ok := firstIPv4(ips); err == nil && ok {
		return ip, nil
	}
	if d.fallbackDNS == "" {
		if err == nil {
			err = errNoIPv4
		}
		return "", err
	}

	r := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var nd net.Dialer
			return nd.DialContext(ctx, network, d.fallbackDNS)
		},
	}
	ips, err = r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if ip, ok := firstIPv4(ips); ok {
		return ip, nil
	}
	return "", errNoIPv4
}

func firstIPv4(ips []net.IP) (string, bool) {
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), true
		}
	}
	return "", false
}
