// Package monitoring serves a built topology over HTTP so that it can be
// inspected while the simulator runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/simtopo/monitoring/web"
	"github.com/sarchlab/simtopo/topology"
)

// Monitor turns a topology into a web server for external inspection.
type Monitor struct {
	portNumber      int
	openBrowser     bool
	profileDuration time.Duration

	lock     sync.Mutex
	topology *topology.Topology
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitoring page in a browser.
func (m *Monitor) WithBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// WithProfileDuration sets how long /api/profile samples the CPU.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// RegisterTopology sets the topology to be served.
func (m *Monitor) RegisterTopology(t *topology.Topology) *Monitor {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.topology = t

	return m
}

// Router returns the request router of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/topology", m.describeTopology)
	r.HandleFunc("/api/devices", m.listDevices)
	r.HandleFunc("/api/device/{name}", m.listDeviceDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/validate", m.validationStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/validate", m.validate).Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server in the background and
// returns the URL it listens on.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = fmt.Sprintf(":%d", m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring topology with %s\n", url)

	server := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panic(err)
		}
	}()

	if m.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
		}
	}

	return url, nil
}

func (m *Monitor) topologyOr404(w http.ResponseWriter) *topology.Topology {
	m.lock.Lock()
	t := m.topology
	m.lock.Unlock()

	if t == nil {
		http.Error(w, "No topology registered", http.StatusNotFound)
	}

	return t
}

func (m *Monitor) describeTopology(w http.ResponseWriter, _ *http.Request) {
	t := m.topologyOr404(w)
	if t == nil {
		return
	}

	writeJSON(w, t.Describe())
}

func (m *Monitor) listDevices(w http.ResponseWriter, _ *http.Request) {
	t := m.topologyOr404(w)
	if t == nil {
		return
	}

	names := []string{}
	for _, d := range t.Devices() {
		names = append(names, d.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) findDeviceOr404(
	w http.ResponseWriter,
	name string,
) *topology.Device {
	t := m.topologyOr404(w)
	if t == nil {
		return nil
	}

	d, found := t.Device(name)
	if !found {
		http.Error(w, "Device not found", http.StatusNotFound)
		return nil
	}

	return d
}

func (m *Monitor) listDeviceDetails(w http.ResponseWriter, r *http.Request) {
	d := m.findDeviceOr404(w, mux.Vars(r)["name"])
	if d == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(d)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type fieldReq struct {
	DeviceName string `json:"device_name,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := m.findDeviceOr404(w, req.DeviceName)
	if d == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(d)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type validateRsp struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	Validated bool     `json:"validated"`
	Check     string   `json:"check,omitempty"`
	Error     string   `json:"error,omitempty"`
	Devices   []string `json:"devices,omitempty"`
}

// validationStatus reports whether the topology is validated. It never
// runs the checks itself.
func (m *Monitor) validationStatus(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	t := m.topology
	if t == nil {
		http.Error(w, "No topology registered", http.StatusNotFound)
		return
	}

	writeJSON(w, validateRsp{
		Name:      t.Name(),
		ID:        t.ID(),
		Validated: t.Validated(),
	})
}

// validate runs the checks on request. A topology that passes is frozen.
func (m *Monitor) validate(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	t := m.topology
	if t == nil {
		http.Error(w, "No topology registered", http.StatusNotFound)
		return
	}

	rsp := validateRsp{Name: t.Name(), ID: t.ID()}

	err := t.Validate()
	if err == nil {
		rsp.Validated = true
		writeJSON(w, rsp)

		return
	}

	rsp.Error = err.Error()
	var vErr *topology.ValidationError
	if errors.As(err, &vErr) {
		rsp.Check = string(vErr.Check)
		rsp.Devices = vErr.Devices
	}

	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
