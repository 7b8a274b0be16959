// Package scene partitions a video timeline into scenes and classifies them.
//
// Boundaries come from scene-change keyframes: a keyframe closes the current
// scene once the scene is at least MinSceneDuration long and the keyframe's
// motion exceeds the threshold (or it is the last one). A trailing scene
// runs to the end of the video, so scenes always cover [0, duration).
//
// Classification is a brightness and saturation heuristic over one
// representative frame per scene. A Classifier can override the result, and
// optional TextExtractor hooks fill OCR and transcript metadata; both default
// to disabled.
package scene
