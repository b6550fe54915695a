package render

// cornerDesignSize is the side of the square canvas the finder ring outline is drawn on.
const cornerDesignSize = 74.7002

type pathOp struct {
	cmd  byte
	args []float64
}

// cornerRing is the scalloped finder ring, outer contour then inner contour.
// Arguments alternate x, y except for V which takes a single y.
var cornerRing = []pathOp{
	{'M', []float64{37.3496, 0}},
	{'C', []float64{39.2939, 0, 40.9948, 1.03842, 41.9287, 2.59082}},
	{'C', []float64{43.2293, 1.34013, 45.1347, 0.780267, 47.0098, 1.28027}},
	{'C', []float64{48.8871, 1.78928, 50.261, 3.23767, 50.7578, 4.98438}},
	{'C', []float64{52.3454, 4.0996, 54.3432, 4.047, 56.0303, 5.01953}},
	{'C', []float64{57.7094, 5.98752, 58.6586, 7.73647, 58.6924, 9.5459}},
	{'C', []float64{60.4517, 9.10661, 62.3883, 9.57215, 63.7598, 10.9502}},
	{'C', []float64{65.1282, 12.3253, 65.5963, 14.2585, 65.1641, 16.0127}},
	{'C', []float64{66.974, 16.044, 68.7242, 16.9982, 69.7002, 18.6797}},
	{'C', []float64{70.6781, 20.3647, 70.6241, 22.3635, 69.7402, 23.9502}},
	{'C', []float64{71.4776, 24.4496, 72.9194, 25.8232, 73.4199, 27.7002}},
	{'C', []float64{73.927, 29.5707, 73.3661, 31.4794, 72.1104, 32.7822}},
	{'C', []float64{73.6621, 33.7163, 74.7002, 35.4166, 74.7002, 37.3604}},
	{'C', []float64{74.7001, 39.307, 73.6582, 41.0084, 72.1025, 41.9414}},
	{'C', []float64{73.357, 43.245, 73.9207, 45.1525, 73.4199, 47.0303}},
	{'C', []float64{72.9187, 48.9027, 71.4782, 50.2735, 69.7383, 50.7734}},
	{'C', []float64{70.6201, 52.3601, 70.6716, 54.3549, 69.7002, 56.04}},
	{'C', []float64{68.7237, 57.7225, 66.9721, 58.6729, 65.1611, 58.7031}},
	{'C', []float64{65.598, 60.4623, 65.131, 62.3982, 63.7598, 63.7695}},
	{'C', []float64{62.3847, 65.138, 60.4515, 65.6061, 58.6973, 65.1738}},
	{'C', []float64{58.6635, 66.9833, 57.7094, 68.7322, 56.0303, 69.7002}},
	{'C', []float64{54.3461, 70.6777, 52.348, 70.6248, 50.7617, 69.7422}},
	{'C', []float64{50.2643, 71.4831, 48.8896, 72.9284, 47.0098, 73.4297}},
	{'C', []float64{45.1389, 73.9368, 43.2296, 73.3763, 41.9268, 72.1201}},
	{'C', []float64{40.9927, 73.6717, 39.2932, 74.71, 37.3496, 74.71}},
	{'C', []float64{35.4051, 74.7098, 33.7042, 73.6711, 32.7705, 72.1182}},
	{'C', []float64{31.4697, 73.3758, 29.5597, 73.9418, 27.6797, 73.4404}},
	{'V', []float64{73.4502}},
	{'C', []float64{25.8065, 72.9422, 24.434, 71.4985, 23.9346, 69.7568}},
	{'C', []float64{22.3504, 70.6301, 20.3591, 70.6781, 18.6797, 69.71}},
	{'C', []float64{16.9957, 68.7391, 16.045, 66.9831, 16.0166, 65.168}},
	{'C', []float64{14.2547, 65.6091, 12.3134, 65.1435, 10.9395, 63.7695}},
	{'C', []float64{9.5687, 62.3919, 9.10168, 60.454, 9.53809, 58.6973}},
	{'C', []float64{7.72791, 58.6641, 5.97815, 57.71, 5.00977, 56.0303}},
	{'C', []float64{4.03552, 54.3517, 4.08377, 52.3649, 4.95801, 50.7812}},
	{'C', []float64{3.21705, 50.2839, 1.77087, 48.9101, 1.26953, 47.0303}},
	{'V', []float64{47.0205}},
	{'C', []float64{0.762081, 45.1489, 1.32758, 43.2375, 2.58496, 41.9346}},
	{'C', []float64{1.03604, 41, 0.000108484, 39.3019, 0, 37.3604}},
	{'C', []float64{0, 35.4159, 1.03815, 33.7141, 2.59082, 32.7803}},
	{'C', []float64{1.34044, 31.4797, 0.780389, 29.575, 1.28027, 27.7002}},
	{'C', []float64{1.78258, 25.8232, 3.22806, 24.4482, 4.97363, 23.9512}},
	{'C', []float64{4.08938, 22.3638, 4.03743, 20.3664, 5.00977, 18.6797}},
	{'C', []float64{5.97815, 16.9999, 7.72788, 16.0496, 9.53809, 16.0166}},
	{'C', []float64{9.10139, 14.2576, 9.56846, 12.3214, 10.9395, 10.9502}},
	{'C', []float64{12.3171, 9.57911, 14.2558, 9.11137, 16.0127, 9.54785}},
	{'C', []float64{16.0426, 7.73421, 16.9969, 5.97989, 18.6797, 5.00977}},
	{'C', []float64{20.3596, 4.03474, 22.3521, 4.08468, 23.9365, 4.96094}},
	{'C', []float64{24.4378, 3.22749, 25.8059, 1.7898, 27.6797, 1.29004}},
	{'C', []float64{29.5511, 0.78264, 31.4617, 1.34357, 32.7646, 2.60059}},
	{'C', []float64{33.6971, 1.04268, 35.4013, 0.000152405, 37.3496, 0}},
	{'Z', nil},
	{'M', []float64{41.0615, 9.17578}},
	{'C', []float64{40.1006, 10.1057, 38.793, 10.6797, 37.3496, 10.6797}},
	{'C', []float64{35.9064, 10.6796, 34.5985, 10.1066, 33.6377, 9.17676}},
	{'C', []float64{32.9511, 10.3241, 31.8358, 11.2176, 30.4404, 11.5898}},
	{'C', []float64{29.0527, 11.9661, 27.6436, 11.7542, 26.4766, 11.1074}},
	{'C', []float64{26.1072, 12.3879, 25.2629, 13.5333, 24.0195, 14.25}},
	{'C', []float64{22.7695, 14.9754, 21.347, 15.1322, 20.0479, 14.8047}},
	{'C', []float64{20.0289, 16.1454, 19.5108, 17.4793, 18.4902, 18.5}},
	{'C', []float64{17.4696, 19.5158, 16.1409, 20.033, 14.8066, 20.0566}},
	{'C', []float64{15.1312, 21.3534, 14.9738, 22.7723, 14.25, 24.0195}},
	{'C', []float64{13.5243, 25.2699, 12.3701, 26.1148, 11.082, 26.4795}},
	{'C', []float64{11.7347, 27.6479, 11.9529, 29.062, 11.5801, 30.46}},
	{'C', []float64{11.2085, 31.8485, 10.3194, 32.9607, 9.17578, 33.6475}},
	{'C', []float64{10.106, 34.6084, 10.6797, 35.9167, 10.6797, 37.3604}},
	{'C', []float64{10.6796, 38.805, 10.1053, 40.1141, 9.17383, 41.0752}},
	{'C', []float64{10.3132, 41.7614, 11.1999, 42.871, 11.5703, 44.2598}},
	{'C', []float64{11.946, 45.6504, 11.7335, 47.0592, 11.0889, 48.2266}},
	{'C', []float64{12.377, 48.593, 13.5297, 49.441, 14.25, 50.6904}},
	{'C', []float64{14.9754, 51.9405, 15.1322, 53.3629, 14.8047, 54.6621}},
	{'C', []float64{16.142, 54.6835, 17.4721, 55.2016, 18.4902, 56.2197}},
	{'C', []float64{19.5097, 57.2441, 20.0278, 58.5787, 20.0479, 59.918}},
	{'C', []float64{21.3469, 59.5917, 22.7696, 59.7493, 24.0195, 60.4697}},
	{'C', []float64{25.2676, 61.1892, 26.1117, 62.3406, 26.4775, 63.627}},
	{'C', []float64{27.6424, 62.9822, 29.0498, 62.7688, 30.4404, 63.1396}},
	{'C', []float64{31.8284, 63.5112, 32.9402, 64.3999, 33.627, 65.543}},
	{'C', []float64{34.5887, 64.6072, 35.9012, 64.0304, 37.3496, 64.0303}},
	{'C', []float64{38.7912, 64.0303, 40.098, 64.6023, 41.0586, 65.5303}},
	{'C', []float64{41.7458, 64.3887, 42.8594, 63.5007, 44.25, 63.1299}},
	{'C', []float64{45.643, 62.7522, 47.057, 62.9676, 48.2266, 63.6201}},
	{'C', []float64{48.5931, 62.3323, 49.4413, 61.1801, 50.6904, 60.46}},
	{'C', []float64{51.9373, 59.7364, 53.3558, 59.5781, 54.6523, 59.9023}},
	{'C', []float64{54.6744, 58.5659, 55.1925, 57.2372, 56.21, 56.2197}},
	{'C', []float64{57.2339, 55.2007, 58.5676, 54.6816, 59.9062, 54.6611}},
	{'C', []float64{59.5835, 53.3649, 59.7414, 51.9468, 60.46, 50.7002}},
	{'C', []float64{61.1797, 49.4517, 62.3312, 48.6068, 63.6182, 48.2412}},
	{'C', []float64{62.9651, 47.0726, 62.7473, 45.658, 63.1201, 44.2598}},
	{'C', []float64{63.4916, 42.8718, 64.3794, 41.7591, 65.5225, 41.0723}},
	{'C', []float64{64.5929, 40.1115, 64.0206, 38.8033, 64.0205, 37.3604}},
	{'C', []float64{64.0205, 35.9186, 64.5915, 34.611, 65.5195, 33.6504}},
	{'C', []float64{64.3785, 32.9631, 63.4908, 31.8501, 63.1201, 30.46}},
	{'C', []float64{62.7421, 29.0656, 62.9572, 27.6498, 63.6113, 26.4795}},
	{'C', []float64{62.3272, 26.1115, 61.1784, 25.2657, 60.46, 24.0195}},
	{'C', []float64{59.7364, 22.7727, 59.5781, 21.3541, 59.9023, 20.0576}},
	{'C', []float64{58.5626, 20.038, 57.23, 19.52, 56.21, 18.5}},
	{'C', []float64{55.1931, 17.4783, 54.675, 16.1482, 54.6523, 14.8125}},
	{'C', []float64{53.3557, 15.1357, 51.9374, 14.9785, 50.6904, 14.2598}},
	{'C', []float64{49.4399, 13.5339, 48.5931, 12.3801, 48.2285, 11.0918}},
	{'C', []float64{47.0603, 11.7439, 45.6474, 11.9624, 44.25, 11.5898}},
	{'V', []float64{11.5801}},
	{'C', []float64{42.8613, 11.2085, 41.7483, 10.3196, 41.0615, 9.17578}},
	{'Z', nil},
}
