package osmparser

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	nodeIDMap       map[int64]uint32
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		nodeIDMap:       make(map[int64]uint32),
	}
}

// highwayDefaultFlags vehicle classes allowed per highway class, before
// access-tag overrides.
// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Access_restrictions
var highwayDefaultFlags = map[string]pkg.VehicleFlag{
	"motorway":      pkg.FLAG_CAR,
	"motorway_link": pkg.FLAG_CAR,
	"trunk":         pkg.FLAG_CAR,
	"trunk_link":    pkg.FLAG_CAR,
	"motorroad":     pkg.FLAG_CAR,

	"primary":          pkg.FLAG_ALL,
	"primary_link":     pkg.FLAG_ALL,
	"secondary":        pkg.FLAG_ALL,
	"secondary_link":   pkg.FLAG_ALL,
	"tertiary":         pkg.FLAG_ALL,
	"tertiary_link":    pkg.FLAG_ALL,
	"residential":      pkg.FLAG_ALL,
	"residential_link": pkg.FLAG_ALL,
	"service":          pkg.FLAG_ALL,
	"unclassified":     pkg.FLAG_ALL,
	"road":             pkg.FLAG_ALL,
	"track":            pkg.FLAG_ALL,
	"living_street":    pkg.FLAG_ALL,

	"cycleway": pkg.FLAG_BIKE,
	"path":     pkg.FLAG_BIKE | pkg.FLAG_WALK,

	"footway":    pkg.FLAG_WALK,
	"pedestrian": pkg.FLAG_WALK,
	"steps":      pkg.FLAG_WALK,
}

func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {

	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel, node classification depends on scan order
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()

		tipe := o.ObjectID().Type()

		switch tipe {
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if len(way.Nodes) < 2 {
					continue
				}

				if !acceptOsmWay(way) {
					continue
				}
				if (countWays+1)%50000 == 0 {
					logger.Sugar().Infof("reading openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				for i, node := range way.Nodes {
					if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
						if i == 0 || i == len(way.Nodes)-1 {
							p.wayNodeMap[int64(node.ID)] = END_NODE
						} else {
							p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
						}
					} else {
						p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
					}
				}
			}
		}
	}
	scanner.Close()

	edgeSet := make(map[uint32]map[uint32]struct{})

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	defer scanner.Close()

	scannedEdges := make([]Edge, 0)

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		tipe := o.ObjectID().Type()

		switch tipe {
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if len(way.Nodes) < 2 {
					continue
				}

				if !acceptOsmWay(way) {
					continue
				}
				if (countWays+1)%50000 == 0 {
					logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				p.processWay(way, edgeSet, &scannedEdges)
			}
		case osm.TypeNode:
			{
				if (countNodes+1)%50000 == 0 {
					logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
				}
				countNodes++
				node := o.(*osm.Node)

				if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
					p.acceptedNodeMap[int64(node.ID)] = nodeCoord{
						lat: node.Lat,
						lon: node.Lon,
					}
				}
			}
		}
	}

	graph := p.BuildGraph(scannedEdges)
	return graph, nil
}

type wayExtraInfo struct {
	oneWay  bool
	forward bool
}

func (p *OsmParser) processWay(way *osm.Way, edgeSet map[uint32]map[uint32]struct{},
	scannedEdges *[]Edge) {

	flags := wayVehicleFlags(way)
	if flags == 0 {
		// no vehicle class may use this way at all
		return
	}

	maxSpeed := 0.0
	highwayTypeSpeed := 0.0

	wayExtraInfoData := wayExtraInfo{}
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	if val := way.Tags.Find("oneway"); val == "yes" || val == "-1" || okvf || okmvf || okvb || okmvb {
		wayExtraInfoData.oneWay = true
	}

	if way.Tags.Find("oneway") == "-1" || okvf || okmvf {
		// okvf / omvf = restricted/not allowed forward.
		wayExtraInfoData.forward = false
	} else {
		wayExtraInfoData.forward = true
	}

	for _, tag := range way.Tags {
		switch tag.Key {
		case "junction":
			{
				// roundabouts are implicitly oneway in way direction
				if tag.Value == "roundabout" || tag.Value == "circular" {
					wayExtraInfoData.oneWay = true
					wayExtraInfoData.forward = true
				}
			}
		case "highway":
			{
				highwayTypeSpeed = roadTypeMaxSpeed(tag.Value)
			}
		case "maxspeed":
			{
				if strings.Contains(tag.Value, "mph") {

					currSpeed, err := strconv.ParseFloat(strings.Replace(tag.Value, " mph", "", -1), 64)
					if err != nil {
						continue // unparseable, the highway class speed covers it
					}
					maxSpeed = currSpeed * 1.60934
				} else if strings.Contains(tag.Value, "km/h") {
					currSpeed, err := strconv.ParseFloat(strings.Replace(tag.Value, " km/h", "", -1), 64)
					if err != nil {
						continue
					}
					maxSpeed = currSpeed
				} else if strings.Contains(tag.Value, "knots") {
					currSpeed, err := strconv.ParseFloat(strings.Replace(tag.Value, " knots", "", -1), 64)
					if err != nil {
						continue
					}
					maxSpeed = currSpeed * 1.852
				} else {
					// km/h without unit, the common case
					currSpeed, err := strconv.ParseFloat(tag.Value, 64)
					if err != nil {
						continue // "signals", "none", "walk", ...
					}
					maxSpeed = currSpeed
				}
			}
		}
	}

	if maxSpeed == 0 {
		maxSpeed = highwayTypeSpeed
	}
	if maxSpeed == 0 {
		maxSpeed = 30
	}

	waySegment := []node{}
	for _, wayNode := range way.Nodes {
		nodeCoord := p.acceptedNodeMap[int64(wayNode.ID)]
		nodeData := node{
			id:    int64(wayNode.ID),
			coord: nodeCoord,
		}
		if p.isJunctionNode(nodeData.id) {

			waySegment = append(waySegment, nodeData)
			p.processSegment(waySegment, maxSpeed, flags, wayExtraInfoData, edgeSet, scannedEdges)
			waySegment = []node{}

			waySegment = append(waySegment, nodeData)

		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.processSegment(waySegment, maxSpeed, flags, wayExtraInfoData, edgeSet, scannedEdges)
	}
}

// wayVehicleFlags derive the allowed vehicle classes of a way. the highway
// class sets the baseline, explicit access tags then grant or revoke a class.
func wayVehicleFlags(way *osm.Way) pkg.VehicleFlag {
	highway := way.Tags.Find("highway")
	flags, ok := highwayDefaultFlags[highway]
	if !ok {
		if way.Tags.Find("junction") != "" {
			// circular service ways without a highway tag
			flags = pkg.FLAG_ALL
		} else {
			return 0
		}
	}

	if isRestricted(way.Tags.Find("access")) {
		flags = 0
	}

	motorVehicle := way.Tags.Find("motor_vehicle")
	if motorVehicle == "" {
		motorVehicle = way.Tags.Find("motorcar")
	}
	flags = applyAccessTag(flags, pkg.FLAG_CAR, motorVehicle)
	flags = applyAccessTag(flags, pkg.FLAG_BIKE, way.Tags.Find("bicycle"))
	flags = applyAccessTag(flags, pkg.FLAG_WALK, way.Tags.Find("foot"))

	return flags
}

func applyAccessTag(flags, classFlag pkg.VehicleFlag, value string) pkg.VehicleFlag {
	switch value {
	case "yes", "designated", "permissive":
		return flags | classFlag
	case "no", "private", "restricted", "use_sidepath":
		return flags &^ classFlag
	default:
		return flags
	}
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" || value == "private" {
		return true
	}
	return false
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

func (p *OsmParser) processSegment(segment []node, speed float64, flags pkg.VehicleFlag,
	wayExtraInfoData wayExtraInfo, edgeSet map[uint32]map[uint32]struct{}, scannedEdges *[]Edge) {

	if len(segment) == 2 && segment[0].id == segment[1].id {
		// skip
		return
	} else if len(segment) > 2 && segment[0].id == segment[len(segment)-1].id {
		// loop
		p.addEdge(segment[0:len(segment)-1], speed, flags, wayExtraInfoData, edgeSet, scannedEdges)
		p.addEdge(segment[len(segment)-2:], speed, flags, wayExtraInfoData, edgeSet, scannedEdges)
	} else {
		p.addEdge(segment, speed, flags, wayExtraInfoData, edgeSet, scannedEdges)
	}
}

func (p *OsmParser) addEdge(segment []node, speed float64, flags pkg.VehicleFlag,
	wayExtraInfoData wayExtraInfo, edgeSet map[uint32]map[uint32]struct{}, scannedEdges *[]Edge) {
	from := segment[0]

	to := segment[len(segment)-1]

	if from == to {
		return
	}

	if _, ok := p.nodeIDMap[from.id]; !ok {
		p.nodeIDMap[from.id] = uint32(len(p.nodeIDMap))
	}
	if _, ok := p.nodeIDMap[to.id]; !ok {
		p.nodeIDMap[to.id] = uint32(len(p.nodeIDMap))
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}

	distanceInMeter := distance * 1000
	speedMS := speed * 1000 / 3600

	fromID := p.nodeIDMap[from.id]
	toID := p.nodeIDMap[to.id]

	if _, ok := edgeSet[fromID]; !ok {
		edgeSet[fromID] = make(map[uint32]struct{})
	}
	if _, ok := edgeSet[toID]; !ok {
		edgeSet[toID] = make(map[uint32]struct{})
	}

	if wayExtraInfoData.oneWay {
		u, v := fromID, toID
		if !wayExtraInfoData.forward {
			u, v = toID, fromID
		}

		if _, ok := edgeSet[u][v]; ok {
			return
		}
		edgeSet[u][v] = struct{}{}

		*scannedEdges = append(*scannedEdges, NewEdge(u, v, distanceInMeter, speedMS, flags))

		// oneway binds vehicles, pedestrians walk the street both ways
		if flags&pkg.FLAG_WALK != 0 {
			if _, ok := edgeSet[v][u]; !ok {
				edgeSet[v][u] = struct{}{}
				*scannedEdges = append(*scannedEdges, NewEdge(v, u, distanceInMeter, speedMS, pkg.FLAG_WALK))
			}
		}
	} else {
		if _, ok := edgeSet[fromID][toID]; ok {
			return
		}
		edgeSet[fromID][toID] = struct{}{}
		edgeSet[toID][fromID] = struct{}{}

		*scannedEdges = append(*scannedEdges, NewEdge(fromID, toID, distanceInMeter, speedMS, flags))
		*scannedEdges = append(*scannedEdges, NewEdge(toID, fromID, distanceInMeter, speedMS, flags))
	}
}

func roadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 40
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 5
	case "road":
		return 20
	case "track":
		return 15
	case "motorroad":
		return 90
	case "cycleway":
		return 15
	case "path":
		return 10
	case "footway":
		return 5
	case "pedestrian":
		return 5
	case "steps":
		return 5
	default:
		return 30
	}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[int64(nodeID)] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := highwayDefaultFlags[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}
