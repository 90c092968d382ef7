// Command loadgen installs a synthetic home against a running server,
// replays a stretch of sensor traffic into it over HTTP and gRPC, then
// rebuilds and prints the resulting latest snapshot.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/eldercare-telemetry/pkg/client"
	iotGrpc "liyu1981.xyz/eldercare-telemetry/pkg/grpc"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type event struct {
	kind   models.Kind
	record map[string]any
}

func main() {
	httpURL := flag.String("http", "http://127.0.0.1:8000", "server base URL")
	grpcAddr := flag.String("grpc", "", "gRPC address, empty sends everything over HTTP")
	hours := flag.Int("hours", 6, "simulated hours of traffic")
	step := flag.Duration("step", time.Minute, "simulated time between readings")
	workers := flag.Int("workers", 16, "concurrent senders")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	rebuild := flag.Bool("rebuild", true, "rebuild the user's snapshots afterwards")
	flag.Parse()

	if *hours <= 0 || *step <= 0 {
		log.Fatal("-hours and -step must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rnd := rand.New(rand.NewSource(*seed))
	api := client.New(*httpURL)

	if err := api.Health(ctx); err != nil {
		log.Fatal("HTTP server not available: ", err)
	}
	fmt.Printf("http server verified\n")

	var ingest *iotGrpc.IngestServiceClient
	if *grpcAddr != "" {
		conn, err := grpc.NewClient(*grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Fatal("Failed to connect to gRPC server: ", err)
		}
		defer conn.Close()
		ingest = iotGrpc.NewIngestServiceClient(conn)
		fmt.Printf("gRPC client connected\n")
	}

	end := time.Now().UTC().Truncate(time.Second)
	start := end.Add(-time.Duration(*hours) * time.Hour)

	user, err := api.CreateUser(ctx, models.User{
		UserName: fmt.Sprintf("loadgen-%d", *seed),
		UserRole: models.RoleCareTarget,
	})
	if err != nil {
		log.Fatal("Failed to create user: ", err)
	}
	for _, s := range homeBlueprint {
		if _, err := api.CreateDevice(ctx, s.device(user.UserID, start)); err != nil {
			log.Fatal("Failed to create device: ", err)
		}
	}
	fmt.Printf("installed %d devices for user %s\n", len(homeBlueprint), user.UserID)

	span := end.Sub(start)
	incident := start.Add(time.Duration(rnd.Int63n(int64(span) / 2)))
	gen := &generator{rnd: rnd, incidentStart: incident, incidentEnd: incident.Add(10 * *step)}

	var events []event
	for t := start; t.Before(end); t = t.Add(*step) {
		for _, s := range homeBlueprint {
			if rec := gen.record(s, s.deviceID(user.UserID), t); rec != nil {
				events = append(events, event{kind: s.kind, record: rec})
			}
		}
	}
	fmt.Printf("generated %d events between %s and %s\n", len(events), start.Format(time.RFC3339), end.Format(time.RFC3339))

	jobs := make(chan event)
	var sent, failed atomic.Int64
	wg := sync.WaitGroup{}
	startTime := time.Now()
	for w := range *workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range jobs {
				// alternate transports per worker when both are available
				var err error
				if ingest != nil && w%2 == 1 {
					err = pushGrpc(ctx, ingest, ev)
				} else {
					err = api.CreateEvent(ctx, ev.kind, ev.record)
				}
				if err != nil {
					failed.Add(1)
					fmt.Printf("\nsend %s failed: %v\n", ev.kind, err)
					continue
				}
				if n := sent.Add(1); n%500 == 0 {
					fmt.Printf("\rsent %v events", n)
				}
			}
		}()
	}
	for _, ev := range events {
		select {
		case jobs <- ev:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\rsent %v events (%v failed): used time=%v seconds, throughput=%v events/second\n",
		sent.Load(), failed.Load(), usedTime.Seconds(), float64(sent.Load())/usedTime.Seconds(),
	)

	if !*rebuild {
		return
	}
	report, err := api.RebuildUser(ctx, user.UserID, nil)
	if err != nil {
		log.Fatal("Rebuild failed: ", err)
	}
	fmt.Printf("rebuild: %+v\n", report)

	latest, err := api.LatestSnapshot(ctx, user.UserID)
	if err != nil {
		log.Fatal("Latest snapshot failed: ", err)
	}
	out, _ := json.MarshalIndent(latest, "", "  ")
	fmt.Println(string(out))
}

func pushGrpc(ctx context.Context, ingest *iotGrpc.IngestServiceClient, ev event) error {
	req, err := structpb.NewStruct(map[string]any{
		"kind":   string(ev.kind),
		"record": ev.record,
	})
	if err != nil {
		return err
	}
	_, err = ingest.PushEvent(ctx, req)
	return err
}
